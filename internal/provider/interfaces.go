package provider

import "context"

// Client represents a chat completion backend.
type Client interface {
	// Complete sends the full conversation and returns the raw text of the
	// model's reply. It does not interpret the reply.
	Complete(ctx context.Context, req *Request) (string, error)
}
