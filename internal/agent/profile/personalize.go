package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/pasar-labs/xiara/server/internal/agent/model"
	logx "github.com/pasar-labs/xiara/server/pkg/logger"
)

// Manager maintains user profiles and injects personalization context into
// queries before answer generation. A missing profile leaves the query
// untouched; profile failures never block a turn.
type Manager struct {
	repo model.ProfileRepository
}

func NewManager(repo model.ProfileRepository) *Manager {
	return &Manager{repo: repo}
}

// Apply appends a personalization context block to the query when the user's
// profile carries preferences.
func (m *Manager) Apply(ctx context.Context, userID string, query string) string {
	prof, err := m.repo.Get(ctx, userID)
	if err != nil {
		logx.Warn().Err(err).Str("user_id", userID).Str("stage", "personalization").Msg("profile lookup failed, skipping personalization")
		return query
	}
	if prof == nil {
		return query
	}

	var hints []string
	if len(prof.LikedCategories) > 0 {
		hints = append(hints, fmt.Sprintf("Focus on categories: %s.", strings.Join(prof.LikedCategories, ", ")))
	}
	if prof.PreferredPriceRange != "" {
		hints = append(hints, fmt.Sprintf("Filter by price range: %s.", prof.PreferredPriceRange))
	}
	if prof.PurchaseIntent != "" {
		hints = append(hints, fmt.Sprintf("User has %s purchase intent.", prof.PurchaseIntent))
	}
	if len(hints) == 0 {
		return query
	}

	block := fmt.Sprintf("[Personalization: %s]", strings.Join(hints, " "))
	if query == "" {
		return block
	}
	return query + "\n\n" + block
}

// RecordQuery appends an effective query to the user's rolling history,
// creating the profile on first use.
func (m *Manager) RecordQuery(ctx context.Context, userID string, query string) error {
	prof, err := m.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if prof == nil {
		prof = &model.UserProfile{UserID: userID}
	}
	prof.RecordQuery(query)
	return m.repo.Save(ctx, prof)
}
