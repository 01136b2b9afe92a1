package db

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// HistoryStore persists the user's chat-input history per conversation. Only
// the user's own typed input is stored; message content from the backend is
// never written here.
type HistoryStore struct {
	store *Store
}

// NewHistoryStore creates a history store on top of an open database
func NewHistoryStore(store *Store) *HistoryStore {
	return &HistoryStore{store: store}
}

// Save records one input line for a conversation
func (h *HistoryStore) Save(ctx context.Context, conversationID, input string) error {
	if strings.TrimSpace(conversationID) == "" {
		return fmt.Errorf("empty conversation id")
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty input")
	}
	_, err := h.store.db.ExecContext(ctx,
		`INSERT INTO input_history (conversation_id, input, created_at) VALUES (?, ?, ?)`,
		conversationID, input, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save input history: %w", err)
	}
	return nil
}

// List returns the most recent inputs for a conversation, newest first
func (h *HistoryStore) List(ctx context.Context, conversationID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.store.db.QueryContext(ctx,
		`SELECT input FROM input_history WHERE conversation_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("list input history: %w", err)
	}
	defer rows.Close()

	var inputs []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, fmt.Errorf("scan input history: %w", err)
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

// Prune deletes history entries older than the retention window
func (h *HistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).Unix()
	res, err := h.store.db.ExecContext(ctx,
		`DELETE FROM input_history WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune input history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
