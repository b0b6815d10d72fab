package nodes

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancy-storefront/server/internal/stylist/model"
)

func TestToolLimit(t *testing.T) {
	s := &model.AdviceState{}
	assert.False(t, incrementToolCallAndCheck(s, 2))
	assert.False(t, checkAndMarkToolLimit(s, 2))
	assert.False(t, incrementToolCallAndCheck(s, 2))
	assert.True(t, checkAndMarkToolLimit(s, 2))
	assert.False(t, checkAndMarkToolLimit(s, 2), "marks only once")
	assert.True(t, s.ToolCallLimitReached)

	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(0))
}

func TestRecordUsage(t *testing.T) {
	assert.Zero(t, RecordUsage(schema.AssistantMessage("hi", nil), "gemini-2.5-flash", "s1", NodeAdviceChatModel))

	out := schema.AssistantMessage("hi", nil)
	out.ResponseMeta = &schema.ResponseMeta{Usage: &schema.TokenUsage{
		PromptTokens:     1_000_000,
		CompletionTokens: 0,
		TotalTokens:      1_000_000,
	}}
	total := RecordUsage(out, "gemini-2.5-flash", "s1", NodeAdviceChatModel)
	assert.InDelta(t, 0.30, total, 1e-9)

	cost, ok := out.Extra[usageCostExtraKey].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gemini-2.5-flash", cost["model"])
}
