package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ajramos/kbchat-tui/internal/config"
)

// MessageServiceImpl implements MessageService
type MessageServiceImpl struct {
	client ChatClient
	config *config.Config
}

// NewMessageService creates a new message service
func NewMessageService(client ChatClient, cfg *config.Config) *MessageServiceImpl {
	return &MessageServiceImpl{
		client: client,
		config: cfg,
	}
}

// ReadInitial loads the prior message history shown when a chat opens
func (s *MessageServiceImpl) ReadInitial(ctx context.Context, spec string) ([]string, error) {
	if spec == "" {
		return nil, fmt.Errorf("conversation spec cannot be empty")
	}
	lines, err := s.client.ReadMessages(ctx, spec, s.config.ReadAtLeast)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return lines, nil
}

// ReadSince fetches all messages strictly newer than since
func (s *MessageServiceImpl) ReadSince(ctx context.Context, spec string, since time.Time) ([]string, error) {
	if spec == "" {
		return nil, fmt.Errorf("conversation spec cannot be empty")
	}
	lines, err := s.client.ReadMessagesSince(ctx, spec, since)
	if err != nil {
		return nil, fmt.Errorf("failed to read new messages: %w", err)
	}
	return lines, nil
}

// Send posts a text message to the conversation
func (s *MessageServiceImpl) Send(ctx context.Context, conversationID, body string) error {
	if conversationID == "" {
		return fmt.Errorf("conversationID cannot be empty")
	}
	if body == "" {
		return fmt.Errorf("message body: %w", ErrInvalidInput)
	}
	if err := s.client.SendMessage(ctx, conversationID, body); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
