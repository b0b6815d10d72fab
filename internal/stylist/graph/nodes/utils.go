package nodes

import (
	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/stylist/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

const (
	NodeInputConverter   = "InputConverter"
	NodeAdviceChatModel  = "AdviceChatModel"
	NodeToolExecutor     = "ToolExecutor"
	DefaultMaxToolCalls  = 5
	usageCostExtraKey    = "usage_cost"
	usageCostTotalExtKey = "usage_cost_total_usd"
)

func normalizeMaxToolCalls(n int) int {
	if n <= 0 {
		return DefaultMaxToolCalls
	}
	return n
}

// checkAndMarkToolLimit marks the state once the count reaches the limit.
// Returns true only on the call that marks it.
func checkAndMarkToolLimit(state *model.AdviceState, max int) bool {
	max = normalizeMaxToolCalls(max)
	if !state.ToolCallLimitReached && state.ToolCallCount >= max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// incrementToolCallAndCheck counts one tool round and reports whether the
// limit is now exceeded.
func incrementToolCallAndCheck(state *model.AdviceState, max int) bool {
	max = normalizeMaxToolCalls(max)
	state.ToolCallCount++
	if state.ToolCallCount > max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// RecordUsage prices the token usage on out, attaches it to out.Extra and
// logs it. It returns the call's total cost in USD.
func RecordUsage(out *schema.Message, modelName, sessionID, node string) float64 {
	if out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return 0
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
	if out.Extra == nil {
		out.Extra = map[string]any{}
	}
	out.Extra[usageCostExtraKey] = map[string]any{
		"currency":          "USD",
		"model":             modelName,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
		"input_cost":        inC,
		"output_cost":       outC,
		"total_cost":        totalC,
	}
	logx.Debug().
		Str("session_id", sessionID).
		Str("node", node).
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
	return totalC
}
