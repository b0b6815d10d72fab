package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/stylist/graph/conversations"
	"github.com/vancy-storefront/server/internal/stylist/graph/prompts"
	"github.com/vancy-storefront/server/internal/stylist/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

func NewInputConverterPreHandler() func(context.Context, model.AdviceInput, *model.AdviceState) (model.AdviceInput, error) {
	return func(ctx context.Context, in model.AdviceInput, s *model.AdviceState) (model.AdviceInput, error) {
		s.SessionID = in.SessionID
		s.Prompt = in.Prompt
		s.ToolCallCount = 0
		s.ToolCallLimitReached = false
		s.ToolCallIDSeq = 0
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewInputConverterNode builds the model context from the system prompt,
// the session history and the buyer's prompt. The prompt is persisted only
// once the model has answered it.
func NewInputConverterNode(mm *conversations.MessagesManager, promptCfg model.PromptConfig) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.AdviceInput) ([]*schema.Message, error) {
		systemPrompt, err := prompts.RenderAdviceSystem(ctx, promptCfg)
		if err != nil {
			return nil, err
		}

		messages, err := mm.BuildContext(ctx, input.SessionID, systemPrompt, input.Prompt)
		if err != nil {
			return nil, fmt.Errorf("build advice context: %w", err)
		}
		return messages, nil
	})
}

func NewAdviceChatModelPreHandler(maxToolCalls int) func(context.Context, []*schema.Message, *model.AdviceState) ([]*schema.Message, error) {
	return func(ctx context.Context, in []*schema.Message, state *model.AdviceState) ([]*schema.Message, error) {
		// Tool results must reference the call they answer.
		if len(in) > 0 {
			last := in[len(in)-1]
			if last != nil && last.Role == schema.Tool && strings.TrimSpace(last.ToolCallID) == "" {
				for i := len(state.History) - 1; i >= 0; i-- {
					msg := state.History[i]
					if msg == nil || msg.Role != schema.Assistant || len(msg.ToolCalls) == 0 {
						continue
					}
					if id := msg.ToolCalls[0].ID; strings.TrimSpace(id) != "" {
						last.ToolCallID = id
					}
					break
				}
			}
		}

		state.History = append(state.History, in...)

		if checkAndMarkToolLimit(state, maxToolCalls) {
			state.History = append(state.History, schema.SystemMessage(fmt.Sprintf(
				"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
					"Answer the customer now using the products you have already found.",
				normalizeMaxToolCalls(maxToolCalls),
			)))
		}

		return state.History, nil
	}
}

func NewAdviceChatModelPostHandler(mm *conversations.MessagesManager, modelName string) func(context.Context, *schema.Message, *model.AdviceState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.AdviceState) (*schema.Message, error) {
		if out == nil {
			return nil, fmt.Errorf("advice model returned no message")
		}

		state.TotalCostUSD += RecordUsage(out, modelName, state.SessionID, NodeAdviceChatModel)
		if out.Extra != nil {
			out.Extra[usageCostTotalExtKey] = state.TotalCostUSD
		}

		// Gemini may omit tool call ids.
		for i := range out.ToolCalls {
			if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
				state.ToolCallIDSeq++
				out.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
			}
		}

		state.History = append(state.History, out)

		final := len(out.ToolCalls) == 0 || state.ToolCallLimitReached
		if out.Role == schema.Assistant && final && strings.TrimSpace(out.Content) != "" {
			if err := mm.SaveExchange(ctx, state.SessionID, state.Prompt, out.Content); err != nil {
				logx.Error().Err(err).Str("session_id", state.SessionID).Msg("failed to save stylist response")
			}
		}
		return out, nil
	}
}

func NewToolExecutorCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		var limitReached bool
		err := compose.ProcessState(ctx, func(_ context.Context, state *model.AdviceState) error {
			limitReached = state.ToolCallLimitReached
			return nil
		})
		if err != nil {
			return "", err
		}

		if limitReached || len(input.ToolCalls) == 0 {
			return compose.END, nil
		}
		return NodeToolExecutor, nil
	}
}

func NewToolExecutorPreHandler(maxToolCalls int) func(context.Context, *schema.Message, *model.AdviceState) (*schema.Message, error) {
	return func(ctx context.Context, in *schema.Message, state *model.AdviceState) (*schema.Message, error) {
		exceeded := incrementToolCallAndCheck(state, maxToolCalls)
		logx.Debug().
			Int("tool_call_count", state.ToolCallCount).
			Str("session_id", state.SessionID).
			Msg("Tool execution attempt")
		if exceeded {
			logx.Warn().
				Int("tool_call_count", state.ToolCallCount).
				Int("max_tool_calls", normalizeMaxToolCalls(maxToolCalls)).
				Str("session_id", state.SessionID).
				Msg("Tool call limit exceeded")
		}
		return in, nil
	}
}
