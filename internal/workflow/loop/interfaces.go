package loop

import (
	"context"

	"github.com/Cyclone1070/stepagent/internal/provider"
)

// completionClient communicates with an LLM.
type completionClient interface {
	// Complete sends the conversation and returns the raw reply text.
	Complete(ctx context.Context, req *provider.Request) (string, error)
}

// toolInvoker dispatches tool calls by name.
type toolInvoker interface {
	// Invoke runs the named tool. Unknown names and tool failures are both
	// returned as errors whose message is fit to show the model.
	Invoke(ctx context.Context, name, input string) (string, error)
}
