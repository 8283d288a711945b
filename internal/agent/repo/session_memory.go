package repo

import (
	"context"
	"sync"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

// MemorySessionRepository keeps dialogue sessions in process memory.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*model.Session)}
}

func (r *MemorySessionRepository) Get(_ context.Context, userID string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[userID]; ok {
		clone := *s
		return &clone, nil
	}
	return &model.Session{UserID: userID}, nil
}

func (r *MemorySessionRepository) Save(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *session
	r.sessions[session.UserID] = &clone
	return nil
}

func (r *MemorySessionRepository) Reset(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
	return nil
}

var _ model.SessionRepository = (*MemorySessionRepository)(nil)
