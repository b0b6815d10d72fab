package conversations

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/stylist/model"
)

// MessagesManager reads and writes a shopping session's stylist history.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	maxTurns         int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		maxTurns:         config.MaxTurns,
	}
}

// SaveExchange appends a completed turn, the buyer's prompt and the reply,
// in one write. Turns that never got a reply are not recorded.
func (cm *MessagesManager) SaveExchange(ctx context.Context, sessionID, prompt, reply string) error {
	return cm.conversationRepo.AddMessage(ctx, sessionID,
		schema.UserMessage(prompt),
		schema.AssistantMessage(reply, nil),
	)
}

// BuildContext returns the system prompt, the most recent history of the
// session and the buyer's new prompt.
func (cm *MessagesManager) BuildContext(ctx context.Context, sessionID, systemPrompt, prompt string) ([]*schema.Message, error) {
	history, err := cm.conversationRepo.LoadHistory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
	}
	for _, m := range trimTail(history.Messages, cm.maxTurns) {
		if m == nil || m.Content == "" {
			continue
		}
		messages = append(messages, m)
	}
	return append(messages, schema.UserMessage(prompt)), nil
}

func (cm *MessagesManager) Clear(ctx context.Context, sessionID string) error {
	return cm.conversationRepo.ClearHistory(ctx, sessionID)
}

// trimTail keeps the last maxTurns messages; a non-positive limit keeps all.
func trimTail(messages []*schema.Message, maxTurns int) []*schema.Message {
	if maxTurns <= 0 || len(messages) <= maxTurns {
		return messages
	}
	return messages[len(messages)-maxTurns:]
}
