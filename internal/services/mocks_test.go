package services

import (
	"context"
	"time"

	"github.com/ajramos/kbchat-tui/internal/keybase"
	"github.com/stretchr/testify/mock"
)

// MockChatClient implements ChatClient for testing
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) ListConversations(ctx context.Context) ([]keybase.Conversation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]keybase.Conversation), args.Error(1)
}

func (m *MockChatClient) ReadMessages(ctx context.Context, spec string, atLeast int) ([]string, error) {
	args := m.Called(ctx, spec, atLeast)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockChatClient) ReadMessagesSince(ctx context.Context, spec string, since time.Time) ([]string, error) {
	args := m.Called(ctx, spec, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockChatClient) SendMessage(ctx context.Context, conversationID, body string) error {
	args := m.Called(ctx, conversationID, body)
	return args.Error(0)
}

func (m *MockChatClient) AttachFile(ctx context.Context, spec, filePath string) (string, error) {
	args := m.Called(ctx, spec, filePath)
	return args.String(0), args.Error(1)
}

func (m *MockChatClient) DownloadFile(ctx context.Context, spec, id, outPath string) (string, error) {
	args := m.Called(ctx, spec, id, outPath)
	return args.String(0), args.Error(1)
}
