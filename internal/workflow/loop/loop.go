// Package loop drives one query through the step protocol: ask the model,
// run the requested tool, feed the observation back, until an OUTPUT step.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Cyclone1070/stepagent/internal/conversation"
	"github.com/Cyclone1070/stepagent/internal/provider"
	"github.com/Cyclone1070/stepagent/internal/step"
	"github.com/Cyclone1070/stepagent/internal/workflow"
	"github.com/google/uuid"
)

// DefaultMaxIterations is used when Options.MaxIterations is not positive.
const DefaultMaxIterations = 25

// Status is the terminal state of a query.
type Status string

const (
	StatusDone             Status = "done"
	StatusParseFailure     Status = "parse_failure"
	StatusIterationLimit   Status = "iteration_limit"
	StatusCompletionFailed Status = "completion_failed"
	StatusCancelled        Status = "cancelled"
)

// Options configures a Loop.
type Options struct {
	MaxIterations int
	// RoundTimeout bounds the completion call and tool invocation of one
	// round together: the tool only gets what the completion call left over.
	// Zero means no per-round deadline.
	RoundTimeout time.Duration
	Params       provider.Params
	SystemPrompt string
	// CorrectUnknownSteps appends an error observation when the model
	// answers with an unrecognised step, instead of silently retrying.
	CorrectUnknownSteps bool
	Logger              *slog.Logger
	// Events receives progress events. It must be drained by the caller.
	Events chan<- workflow.Event
}

// Result describes how a query ended.
type Result struct {
	Status  Status
	Output  string
	Rounds  int
	QueryID string
	// Transcript is the final conversation, system prompt first.
	Transcript []conversation.Message
}

// Loop runs queries against a completion client and a tool registry.
// Each Run owns a fresh conversation; a Loop may serve sequential queries.
type Loop struct {
	client completionClient
	tools  toolInvoker
	opts   Options
	logger *slog.Logger
	newID  func() string
}

func NewLoop(client completionClient, tools toolInvoker, opts Options) *Loop {
	if client == nil {
		panic("client is required")
	}
	if tools == nil {
		panic("tools is required")
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loop{
		client: client,
		tools:  tools,
		opts:   opts,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Run answers one query. It always returns a Result; the error is non-nil
// unless Status is StatusDone:
//   - *step.ParseError when a response is not a valid step
//   - *IterationLimitError when MaxIterations rounds produce no OUTPUT
//   - *CompletionError when the backend fails
//   - ctx.Err() when ctx is cancelled
func (l *Loop) Run(ctx context.Context, query string) (*Result, error) {
	res := &Result{QueryID: l.newID()}
	logger := l.logger.With("query_id", res.QueryID)

	conv := conversation.New(l.opts.SystemPrompt)
	conv.AppendUser(query)
	defer func() {
		res.Transcript = conv.Messages()
		l.emit(workflow.DoneEvent{})
	}()

	logger.Info("query started", "max_iterations", l.opts.MaxIterations)

	round := 0
	for {
		if err := ctx.Err(); err != nil {
			return l.abort(res, logger, StatusCancelled, err)
		}

		round++
		if round > l.opts.MaxIterations {
			return l.abort(res, logger, StatusIterationLimit, &IterationLimitError{Limit: l.opts.MaxIterations})
		}
		res.Rounds = round
		l.emit(workflow.RoundStartEvent{Round: round, Max: l.opts.MaxIterations})

		output, done, err := l.runRound(ctx, conv, logger.With("round", round), round)
		if err != nil {
			return l.abort(res, logger, statusFor(ctx, err), err)
		}
		if done {
			res.Status = StatusDone
			res.Output = output
			logger.Info("query finished", "rounds", round)
			return res, nil
		}
	}
}

// runRound performs one model call and reacts to the step it returns.
// done reports an OUTPUT step; err aborts the query.
func (l *Loop) runRound(ctx context.Context, conv *conversation.Conversation, logger *slog.Logger, round int) (output string, done bool, err error) {
	roundCtx, cancel := l.roundContext(ctx)
	defer cancel()

	l.emit(workflow.ThinkingEvent{})
	raw, err := l.client.Complete(roundCtx, &provider.Request{
		Messages: conv.Messages(),
		Params:   l.opts.Params,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, &CompletionError{Round: round, Cause: err}
	}

	conv.AppendAssistant(raw)
	logger.Debug("model response", "raw", raw)

	parsed, err := step.Parse(raw)
	if err != nil {
		return "", false, err
	}

	switch s := parsed.(type) {
	case step.Output:
		l.emit(workflow.OutputEvent{Content: s.Content})
		return s.Content, true, nil

	case step.Think:
		logger.Debug("think step", "content", s.Content)
		l.emit(workflow.ThoughtEvent{Content: s.Content})

	case step.Unknown:
		logger.Warn("unrecognized step", "step", s.Discriminator)
		l.emit(workflow.UnknownStepEvent{Discriminator: s.Discriminator, Content: s.Content})
		if l.opts.CorrectUnknownSteps {
			conv.AppendObservation(step.ErrorObservation(&unknownStepError{discriminator: s.Discriminator}))
		}

	case step.Action:
		l.act(roundCtx, conv, logger, s)
	}
	return "", false, nil
}

// act invokes the requested tool and appends the observation. Tool failures
// are reported to the model, never returned.
func (l *Loop) act(ctx context.Context, conv *conversation.Conversation, logger *slog.Logger, a step.Action) {
	logger = logger.With("tool", a.Tool)
	l.emit(workflow.ActionEvent{Tool: a.Tool, Input: a.Input, Description: a.Description})

	start := time.Now()
	result, err := l.tools.Invoke(ctx, a.Tool, a.Input)
	if err != nil {
		logger.Warn("tool failed", "error", err, "duration", time.Since(start))
		conv.AppendObservation(step.ErrorObservation(err))
		l.emit(workflow.ObservationEvent{Tool: a.Tool, Content: "Error: " + err.Error(), IsError: true})
		return
	}

	logger.Info("tool succeeded", "duration", time.Since(start), "result_bytes", len(result))
	conv.AppendObservation(step.Observation(result))
	l.emit(workflow.ObservationEvent{Tool: a.Tool, Content: result})
}

func (l *Loop) roundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.opts.RoundTimeout > 0 {
		return context.WithTimeout(ctx, l.opts.RoundTimeout)
	}
	return context.WithCancel(ctx)
}

func (l *Loop) abort(res *Result, logger *slog.Logger, status Status, err error) (*Result, error) {
	res.Status = status
	logger.Error("query aborted", "status", string(status), "rounds", res.Rounds, "error", err)
	l.emit(workflow.AbortEvent{Reason: string(status), Err: err})
	return res, err
}

// emit sends an event if a channel is configured. Sends block until received.
func (l *Loop) emit(e workflow.Event) {
	if l.opts.Events != nil {
		l.opts.Events <- e
	}
}

func statusFor(ctx context.Context, err error) Status {
	if ctx.Err() != nil {
		return StatusCancelled
	}
	var parseErr *step.ParseError
	if errors.As(err, &parseErr) {
		return StatusParseFailure
	}
	return StatusCompletionFailed
}

type unknownStepError struct {
	discriminator string
}

func (e *unknownStepError) Error() string {
	return fmt.Sprintf("unrecognized step %q. Respond with a single ACTION or OUTPUT step.", e.discriminator)
}
