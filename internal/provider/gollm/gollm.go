// Package gollm implements provider.Client for OpenAI-compatible and other
// hosted backends through github.com/teilomillet/gollm.
package gollm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/stepagent/internal/conversation"
	"github.com/Cyclone1070/stepagent/internal/provider"
	"github.com/teilomillet/gollm"
)

// jsonInstruction is appended to the system prompt when JSON mode is on,
// since gollm has no provider-neutral response format switch.
const jsonInstruction = "Respond with exactly one JSON object and nothing else: no prose, no markdown code fences."

// Provider sends conversations through a gollm.LLM.
type Provider struct {
	name  string
	model string
	llm   gollm.LLM
}

// New creates a gollm-backed provider. Sampling params are fixed at
// construction; per-request params only toggle JSON mode.
func New(name, model, apiKey string, params provider.Params) (*Provider, error) {
	opts := []gollm.ConfigOption{
		gollm.SetProvider(name),
		gollm.SetModel(model),
		gollm.SetTemperature(float64(params.Temperature)),
		gollm.SetMaxRetries(0),
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if params.MaxTokens > 0 {
		opts = append(opts, gollm.SetMaxTokens(params.MaxTokens))
	}
	if apiKey != "" {
		opts = append(opts, gollm.SetAPIKey(apiKey))
	}

	llm, err := gollm.NewLLM(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", name, err)
	}
	return NewFromLLM(name, model, llm), nil
}

// NewFromLLM wraps an existing gollm.LLM instance.
func NewFromLLM(name, model string, llm gollm.LLM) *Provider {
	if llm == nil {
		panic("llm is required")
	}
	return &Provider{name: name, model: model, llm: llm}
}

// Complete sends the conversation and returns the model's text reply.
func (p *Provider) Complete(ctx context.Context, req *provider.Request) (string, error) {
	text, err := p.llm.Generate(ctx, buildPrompt(req))
	if err != nil {
		return "", translateError(err)
	}
	if strings.TrimSpace(text) == "" {
		return "", &provider.ProviderError{
			Code:    provider.ErrorCodeEmptyResponse,
			Message: "empty completion",
		}
	}
	return text, nil
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.model
}

// buildPrompt flattens the conversation into one gollm prompt. gollm takes a
// single user turn, so earlier turns are replayed as labelled transcript lines.
func buildPrompt(req *provider.Request) *gollm.Prompt {
	system, rest := req.SplitSystem()
	if req.Params.JSONMode {
		if system != "" {
			system += "\n\n"
		}
		system += jsonInstruction
	}

	return gollm.NewPrompt(renderTranscript(rest), promptOptions(system, req.Params)...)
}

func promptOptions(system string, params provider.Params) []gollm.PromptOption {
	var opts []gollm.PromptOption
	if system != "" {
		opts = append(opts, gollm.WithSystemPrompt(system, gollm.CacheTypeEphemeral))
	}
	if params.MaxTokens > 0 {
		opts = append(opts, gollm.WithMaxLength(params.MaxTokens))
	}
	return opts
}

// renderTranscript writes each message on its own block. A conversation that
// is just the user's query is sent as-is.
func renderTranscript(messages []conversation.Message) string {
	if len(messages) == 1 && messages[0].Role == conversation.RoleUser {
		return messages[0].Content
	}
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch msg.Role {
		case conversation.RoleAssistant:
			b.WriteString("[Assistant]: ")
		default:
			b.WriteString("[User]: ")
		}
		b.WriteString(msg.Content)
	}
	return b.String()
}

// translateError classifies a gollm error by its message, since gollm does
// not expose typed HTTP errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	msg := strings.ToLower(err.Error())
	pe := &provider.ProviderError{Underlying: err}
	switch {
	case containsAny(msg, "401", "unauthorized", "invalid api key", "invalid key"):
		pe.Code, pe.Message = provider.ErrorCodeAuth, "authentication failed"
	case containsAny(msg, "403", "forbidden"):
		pe.Code, pe.Message = provider.ErrorCodePermission, "permission denied"
	case containsAny(msg, "404", "model not found", "does not exist"):
		pe.Code, pe.Message = provider.ErrorCodeInvalidModel, "model not found"
	case containsAny(msg, "429", "rate limit"):
		pe.Code, pe.Message, pe.Retryable = provider.ErrorCodeRateLimit, "rate limit exceeded", true
	case containsAny(msg, "context length", "too many tokens", "maximum context"):
		pe.Code, pe.Message = provider.ErrorCodeContextLength, "context length exceeded"
	case containsAny(msg, "content filter", "safety"):
		pe.Code, pe.Message = provider.ErrorCodeContentBlocked, "content blocked"
	case containsAny(msg, "500", "502", "503", "504", "internal server", "unavailable"):
		pe.Code, pe.Message, pe.Retryable = provider.ErrorCodeUnavailable, "service unavailable", true
	case containsAny(msg, "timeout", "timed out"):
		pe.Code, pe.Message, pe.Retryable = provider.ErrorCodeTimeout, "request timed out", true
	default:
		pe.Code, pe.Message, pe.Retryable = provider.ErrorCodeNetwork, "request failed", true
	}
	return pe
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
