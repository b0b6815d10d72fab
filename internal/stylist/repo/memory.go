package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/vancy-storefront/server/internal/stylist/model"
)

// MemoryConversationRepository keeps stylist history in process. Messages
// are stored JSON-encoded so callers never share pointers with the store.
type MemoryConversationRepository struct {
	mu       sync.Mutex
	sessions map[string][]string
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{sessions: make(map[string][]string)}
}

func (r *MemoryConversationRepository) AddMessage(_ context.Context, sessionID string, messages ...*schema.Message) error {
	rows := make([]string, 0, len(messages))
	for _, m := range messages {
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		rows = append(rows, string(b))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = append(r.sessions[sessionID], rows...)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, sessionID string) (*model.ConversationHistory, error) {
	r.mu.Lock()
	rows := append([]string(nil), r.sessions[sessionID]...)
	r.mu.Unlock()

	msgs, err := decodeMessages(sessionID, rows)
	if err != nil {
		return nil, err
	}
	return &model.ConversationHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
