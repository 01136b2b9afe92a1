package services

import (
	"context"
	"time"

	"github.com/ajramos/kbchat-tui/internal/keybase"
)

// ChatClient is the surface of the keybase client the services depend on.
// Every call is stateless: one subprocess per operation, no shared session.
type ChatClient interface {
	ListConversations(ctx context.Context) ([]keybase.Conversation, error)
	ReadMessages(ctx context.Context, spec string, atLeast int) ([]string, error)
	ReadMessagesSince(ctx context.Context, spec string, since time.Time) ([]string, error)
	SendMessage(ctx context.Context, conversationID, body string) error
	AttachFile(ctx context.Context, spec, filePath string) (string, error)
	DownloadFile(ctx context.Context, spec, id, outPath string) (string, error)
}

// ConversationService handles conversation listing and lookup
type ConversationService interface {
	// ListConversations returns conversations sorted by last activity
	// (newest first), truncated to max_recent and with hidden names removed
	ListConversations(ctx context.Context) ([]ConversationItem, error)
	// ResolveConversation finds a conversation whose display name contains
	// ref (case-insensitive). Hidden conversations are still resolvable.
	ResolveConversation(ctx context.Context, ref string) (ConversationItem, bool, error)
}

// MessageService handles reading and sending chat messages
type MessageService interface {
	ReadInitial(ctx context.Context, spec string) ([]string, error)
	ReadSince(ctx context.Context, spec string, since time.Time) ([]string, error)
	Send(ctx context.Context, conversationID, body string) error
}

// AttachmentService handles file upload and download for a conversation
type AttachmentService interface {
	Attach(ctx context.Context, spec, filePath string) (string, error)
	Download(ctx context.Context, spec, fileID string) (string, error)
}

// HistoryService persists the user's own chat-input history
type HistoryService interface {
	RecordInput(ctx context.Context, conversationID, input string) error
	RecentInputs(ctx context.Context, conversationID string, limit int) ([]string, error)
}

// ConversationItem pairs a conversation snapshot with its resolved display name
type ConversationItem struct {
	Conversation keybase.Conversation
	Name         string
}

// Spec returns the backend addressing string for this conversation
func (i ConversationItem) Spec() string {
	return i.Conversation.Spec()
}

// ID returns the conversation identifier
func (i ConversationItem) ID() string {
	return i.Conversation.ID
}
