package services

import (
	"context"
	"strings"

	"github.com/ajramos/kbchat-tui/internal/db"
)

// HistoryServiceImpl implements HistoryService on top of the SQLite store
type HistoryServiceImpl struct {
	store *db.HistoryStore
}

// NewHistoryService creates a new history service. A nil store disables
// persistence; the service then degrades to a no-op.
func NewHistoryService(store *db.HistoryStore) *HistoryServiceImpl {
	return &HistoryServiceImpl{store: store}
}

// RecordInput stores one line the user typed into a chat
func (s *HistoryServiceImpl) RecordInput(ctx context.Context, conversationID, input string) error {
	if s.store == nil {
		return nil
	}
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return s.store.Save(ctx, conversationID, input)
}

// RecentInputs returns the most recent typed lines for a conversation
func (s *HistoryServiceImpl) RecentInputs(ctx context.Context, conversationID string, limit int) ([]string, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, conversationID, limit)
}
