// Package step implements the JSON step protocol spoken between the agent
// loop and the model: ACTION, OUTPUT and THINK steps from the model, and
// OBSERVE messages back to it.
package step

// Discriminator values carried in the "step" field.
const (
	KindAction  = "ACTION"
	KindOutput  = "OUTPUT"
	KindThink   = "THINK"
	KindObserve = "OBSERVE"
)

// Step is one parsed model response.
// Callers handle steps via type switch.
type Step interface {
	isStep()
}

// Action asks the loop to invoke a tool.
type Action struct {
	Tool        string
	Input       string
	Description string // optional "content" field
}

func (Action) isStep() {}

// Output is the final answer for the query.
type Output struct {
	Content string
}

func (Output) isStep() {}

// Think is intermediate reasoning. It is never fed back to the model.
type Think struct {
	Content string
}

func (Think) isStep() {}

// Unknown is valid JSON without a recognised discriminator.
type Unknown struct {
	Discriminator string
	Content       string
}

func (Unknown) isStep() {}
