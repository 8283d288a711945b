package model

import (
	"context"
	"time"
)

// NegotiationIntent classifies what a message is asking for, price-wise.
type NegotiationIntent string

const (
	IntentDiscount NegotiationIntent = "discount"
	IntentBargain  NegotiationIntent = "bargain"
	IntentInquiry  NegotiationIntent = "inquiry"
	IntentNone     NegotiationIntent = "none"
)

// NegotiationState tracks one user's active price negotiation for a single
// product. CurrentOffer only ever moves downward for a fixed OriginalPrice,
// and the effective discount never exceeds 30%.
type NegotiationState struct {
	ProductID     string    `json:"product_id"`
	OriginalPrice float64   `json:"original_price"`
	TargetPrice   float64   `json:"target_price"`
	CurrentOffer  float64   `json:"current_offer"`
	Attempts      int       `json:"attempts"`
	LastUpdate    time.Time `json:"last_update"`
}

type NegotiationRepository interface {
	// Get returns the active negotiation for the user, or nil if none exists.
	Get(ctx context.Context, userID string) (*NegotiationState, error)

	// Save persists the negotiation state.
	Save(ctx context.Context, userID string, state *NegotiationState) error

	// Delete removes the negotiation state entirely. Deleting absent state is a no-op.
	Delete(ctx context.Context, userID string) error
}
