package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type HistoryRepository interface {
	// AddMessage appends a message to the conversation history for the given user
	AddMessage(ctx context.Context, userID string, message *schema.Message) error

	// LoadHistory retrieves the conversation history for a user
	LoadHistory(ctx context.Context, userID string) (*ConversationHistory, error)

	// ClearHistory removes all conversation history for a user
	ClearHistory(ctx context.Context, userID string) error
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	UserID   string
	Messages []*schema.Message
}
