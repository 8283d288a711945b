package repo

import (
	"context"
	"sync"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
)

// MemoryProfileRepository keeps user profiles in process memory.
type MemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*model.UserProfile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{profiles: make(map[string]*model.UserProfile)}
}

func (r *MemoryProfileRepository) Get(_ context.Context, userID string) (*model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	clone := *p
	clone.LikedCategories = append([]string(nil), p.LikedCategories...)
	clone.History = append([]string(nil), p.History...)
	return &clone, nil
}

func (r *MemoryProfileRepository) Save(_ context.Context, profile *model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	clone.LikedCategories = append([]string(nil), profile.LikedCategories...)
	clone.History = append([]string(nil), profile.History...)
	r.profiles[profile.UserID] = &clone
	return nil
}

var _ model.ProfileRepository = (*MemoryProfileRepository)(nil)
