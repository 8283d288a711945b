package repo

import (
	"context"
	"sync"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

// MemoryNegotiationRepository keeps active negotiations in process memory.
type MemoryNegotiationRepository struct {
	mu           sync.RWMutex
	negotiations map[string]*model.NegotiationState
}

func NewMemoryNegotiationRepository() *MemoryNegotiationRepository {
	return &MemoryNegotiationRepository{negotiations: make(map[string]*model.NegotiationState)}
}

func (r *MemoryNegotiationRepository) Get(_ context.Context, userID string) (*model.NegotiationState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.negotiations[userID]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, nil
}

func (r *MemoryNegotiationRepository) Save(_ context.Context, userID string, state *model.NegotiationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *state
	r.negotiations[userID] = &clone
	return nil
}

func (r *MemoryNegotiationRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.negotiations, userID)
	return nil
}

var _ model.NegotiationRepository = (*MemoryNegotiationRepository)(nil)
