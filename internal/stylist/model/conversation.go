package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type ConversationRepository interface {
	// AddMessage appends messages to the session's history in one write.
	AddMessage(ctx context.Context, sessionID string, messages ...*schema.Message) error

	// LoadHistory returns the session's history, oldest first.
	LoadHistory(ctx context.Context, sessionID string) (*ConversationHistory, error)

	// ClearHistory removes the session's history.
	ClearHistory(ctx context.Context, sessionID string) error
}

// ConversationHistory is the stored chat of one shopping session.
type ConversationHistory struct {
	SessionID string
	Messages  []*schema.Message
}
