// Package provider defines the completion request shared by all model
// backends, and the error taxonomy they map their SDK failures into.
package provider

import "github.com/Cyclone1070/stepagent/internal/conversation"

// Params are the sampling parameters sent with every request.
type Params struct {
	Temperature float32
	MaxTokens   int
	JSONMode    bool // constrain output to a single JSON object
}

// Request is one completion call: the whole conversation so far plus params.
type Request struct {
	Messages []conversation.Message
	Params   Params
}

// SplitSystem separates the leading system messages from the rest of the
// conversation. Multiple system messages are joined with a blank line.
func (r *Request) SplitSystem() (system string, rest []conversation.Message) {
	i := 0
	for ; i < len(r.Messages) && r.Messages[i].Role == conversation.RoleSystem; i++ {
		if system != "" {
			system += "\n\n"
		}
		system += r.Messages[i].Content
	}
	return system, r.Messages[i:]
}
