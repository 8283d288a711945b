package model

import "context"

// Session holds the per-user dialogue state that survives across turns.
// Created on first interaction and mutated on every turn; never explicitly
// destroyed except through Reset.
type Session struct {
	UserID                string `json:"user_id"`
	ClarificationAttempts int    `json:"clarification_attempts"`
	LastQuery             string `json:"last_query,omitempty"`
}

type SessionRepository interface {
	// Get returns the session for the user, creating a fresh one if none exists.
	Get(ctx context.Context, userID string) (*Session, error)

	// Save persists the session state.
	Save(ctx context.Context, session *Session) error

	// Reset removes all session state for the user.
	Reset(ctx context.Context, userID string) error
}
