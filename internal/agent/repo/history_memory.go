package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

// MemoryHistoryRepository keeps conversation turns in process memory. It backs
// Redis-less runs and tests; entries live until cleared or the process exits.
type MemoryHistoryRepository struct {
	mu       sync.RWMutex
	messages map[string][]*schema.Message
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{messages: make(map[string][]*schema.Message)}
}

func (r *MemoryHistoryRepository) AddMessage(_ context.Context, userID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[userID] = append(r.messages[userID], message)
	return nil
}

func (r *MemoryHistoryRepository) LoadHistory(_ context.Context, userID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.messages[userID]
	msgs := make([]*schema.Message, len(stored))
	copy(msgs, stored)
	return &model.ConversationHistory{UserID: userID, Messages: msgs}, nil
}

func (r *MemoryHistoryRepository) ClearHistory(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, userID)
	return nil
}

var _ model.HistoryRepository = (*MemoryHistoryRepository)(nil)
