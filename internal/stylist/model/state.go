package model

import (
	"github.com/cloudwego/eino/schema"
)

// AdviceState is the per-invocation graph state of the advice flow. It is
// registered with compose.WithGenLocalState and only touched inside state
// handlers or compose.ProcessState.
type AdviceState struct {
	SessionID            string
	Prompt               string
	History              []*schema.Message
	ToolCallCount        int
	ToolCallLimitReached bool
	ToolCallIDSeq        int
	TotalCostUSD         float64
}

// AdviceInput is one buyer message to the stylist.
type AdviceInput struct {
	SessionID string `json:"session_id"`
	Prompt    string `json:"prompt"`
}
