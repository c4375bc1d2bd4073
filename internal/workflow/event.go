// Package workflow defines the events the agent loop reports to its observers.
package workflow

// Event is the interface for all workflow events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// RoundStartEvent is emitted at the start of each round.
type RoundStartEvent struct {
	Round int
	Max   int
}

func (RoundStartEvent) isEvent() {}

// ThinkingEvent is emitted while waiting for the model.
type ThinkingEvent struct{}

func (ThinkingEvent) isEvent() {}

// ThoughtEvent carries a THINK step.
type ThoughtEvent struct {
	Content string
}

func (ThoughtEvent) isEvent() {}

// ActionEvent is emitted before a requested tool is invoked.
type ActionEvent struct {
	Tool        string
	Input       string
	Description string
}

func (ActionEvent) isEvent() {}

// ObservationEvent carries the result fed back to the model after an action.
type ObservationEvent struct {
	Tool    string
	Content string
	IsError bool
}

func (ObservationEvent) isEvent() {}

// UnknownStepEvent is emitted when the model answers with an unrecognised step.
type UnknownStepEvent struct {
	Discriminator string
	Content       string
}

func (UnknownStepEvent) isEvent() {}

// OutputEvent carries the final answer.
type OutputEvent struct {
	Content string
}

func (OutputEvent) isEvent() {}

// AbortEvent is emitted when the loop stops without an answer.
type AbortEvent struct {
	Reason string
	Err    error
}

func (AbortEvent) isEvent() {}

// DoneEvent is emitted when the workflow loop completes, whatever the outcome.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}
