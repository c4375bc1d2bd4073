//go:build integration

package gemini

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/Cyclone1070/stepagent/internal/conversation"
	"github.com/Cyclone1070/stepagent/internal/provider"
	"github.com/Cyclone1070/stepagent/internal/step"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProvider_Live_ListModels(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping live API test")
	}

	client, err := NewRealGeminiClientFromKey(context.Background(), apiKey)
	require.NoError(t, err)

	models, err := client.ListModels(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, models)
	for _, m := range models {
		assert.True(t, strings.HasPrefix(m, "gemini-"), "unexpected model name %q", m)
	}
}

func TestGeminiProvider_Live_StepReply(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping live API test")
	}

	client, err := NewRealGeminiClientFromKey(context.Background(), apiKey)
	require.NoError(t, err)
	p := New(client, "gemini-2.5-flash")

	text, err := p.Complete(context.Background(), &provider.Request{
		Messages: []conversation.Message{
			{Role: conversation.RoleSystem, Content: `Reply with exactly one JSON object: {"step":"OUTPUT","content":"<answer>"}`},
			{Role: conversation.RoleUser, Content: "What is 2+2?"},
		},
		Params: provider.Params{Temperature: 0, MaxTokens: 256, JSONMode: true},
	})
	require.NoError(t, err)

	s, err := step.Parse(text)
	require.NoError(t, err)
	assert.IsType(t, step.Output{}, s)
}
