package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Cyclone1070/stepagent/internal/conversation"
	"github.com/stretchr/testify/assert"
)

func TestSplitSystem(t *testing.T) {
	req := &Request{Messages: []conversation.Message{
		{Role: conversation.RoleSystem, Content: "a"},
		{Role: conversation.RoleSystem, Content: "b"},
		{Role: conversation.RoleUser, Content: "q"},
		{Role: conversation.RoleAssistant, Content: "r"},
	}}

	system, rest := req.SplitSystem()

	assert.Equal(t, "a\n\nb", system)
	assert.Equal(t, req.Messages[2:], rest)
}

func TestSplitSystem_NoSystem(t *testing.T) {
	req := &Request{Messages: []conversation.Message{{Role: conversation.RoleUser, Content: "q"}}}

	system, rest := req.SplitSystem()

	assert.Empty(t, system)
	assert.Len(t, rest, 1)
}

func TestProviderError_Classification(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("round 3: %w", &ProviderError{Code: ErrorCodeRateLimit, Message: "slow down", Underlying: cause, Retryable: true})

	assert.True(t, IsRetryable(err))
	assert.Equal(t, ErrorCodeRateLimit, CodeOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "rate_limit: slow down (boom)")
}

func TestProviderError_PlainError(t *testing.T) {
	err := errors.New("plain")

	assert.False(t, IsRetryable(err))
	assert.Equal(t, ErrorCode(""), CodeOf(err))
}
