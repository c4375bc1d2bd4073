// Package gemini implements provider.Client on top of the Google Gen AI SDK.
package gemini

import (
	"context"

	"github.com/Cyclone1070/stepagent/internal/provider"
)

// GeminiProvider sends conversations to a Gemini model.
type GeminiProvider struct {
	client    GeminiClient
	modelName string
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	if client == nil {
		panic("client is required")
	}
	if modelName == "" {
		panic("modelName is required")
	}
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
	}
}

// Complete sends the conversation and returns the model's text reply.
func (p *GeminiProvider) Complete(ctx context.Context, req *provider.Request) (string, error) {
	system, rest := req.SplitSystem()
	contents := toGeminiContents(rest)
	config := toGeminiConfig(system, req.Params)

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return "", mapGeminiError(err)
	}

	return fromGeminiResponse(resp)
}

// Model returns the configured model name.
func (p *GeminiProvider) Model() string {
	return p.modelName
}

// ListModels returns the gemini models available to the configured key.
func (p *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	return p.client.ListModels(ctx)
}
