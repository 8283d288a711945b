package model

import "context"

// ProfileHistoryLimit bounds the rolling query history kept per profile.
const ProfileHistoryLimit = 10

// UserProfile carries the preferences used to personalize answers, plus a
// rolling history of the user's recent effective queries.
type UserProfile struct {
	UserID              string   `json:"user_id"`
	LikedCategories     []string `json:"liked_categories,omitempty"`
	PreferredPriceRange string   `json:"preferred_price_range,omitempty"`
	PurchaseIntent      string   `json:"purchase_intent,omitempty"`
	History             []string `json:"history,omitempty"`
}

// RecordQuery appends an effective query to the rolling history.
func (p *UserProfile) RecordQuery(query string) {
	p.History = append(p.History, query)
	if len(p.History) > ProfileHistoryLimit {
		p.History = p.History[len(p.History)-ProfileHistoryLimit:]
	}
}

type ProfileRepository interface {
	// Get returns the stored profile for the user, or nil if none exists.
	Get(ctx context.Context, userID string) (*UserProfile, error)

	// Save persists the profile.
	Save(ctx context.Context, profile *UserProfile) error
}
