package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		dbPath string
	}{
		{"empty_path", ""},
		{"whitespace_path", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.dbPath)
			assert.Nil(t, store)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "empty database path")
		})
	}
}

func TestOpen_DirectoryCreation(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "deep", "test.sqlite3")

	store, err := Open(ctx, dbPath)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Dir(dbPath))
	assert.NoError(t, store.Close())
}

func TestHistoryStore_SaveAndList(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryStore(openTestStore(t))

	require.NoError(t, h.Save(ctx, "c1", "hello"))
	require.NoError(t, h.Save(ctx, "c1", "/af notes.txt"))
	require.NoError(t, h.Save(ctx, "c2", "other conversation"))

	inputs, err := h.List(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"/af notes.txt", "hello"}, inputs)

	inputs, err = h.List(ctx, "c2", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"other conversation"}, inputs)
}

func TestHistoryStore_ListLimit(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryStore(openTestStore(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Save(ctx, "c1", string(rune('a'+i))))
	}

	inputs, err := h.List(ctx, "c1", 2)
	require.NoError(t, err)
	assert.Len(t, inputs, 2)
}

func TestHistoryStore_SaveValidation(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryStore(openTestStore(t))

	assert.Error(t, h.Save(ctx, "", "hello"))
	assert.Error(t, h.Save(ctx, "c1", "  "))
}

func TestHistoryStore_Prune(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	h := NewHistoryStore(store)

	require.NoError(t, h.Save(ctx, "c1", "recent"))
	// Backdate one entry past the retention window
	_, err := store.DB().ExecContext(ctx,
		`INSERT INTO input_history (conversation_id, input, created_at) VALUES ('c1', 'stale', ?)`,
		time.Now().Add(-48*time.Hour).Unix())
	require.NoError(t, err)

	n, err := h.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	inputs, err := h.List(ctx, "c1", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"recent"}, inputs)
}
