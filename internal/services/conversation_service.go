package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ajramos/kbchat-tui/internal/config"
)

// ConversationServiceImpl implements ConversationService
type ConversationServiceImpl struct {
	client      ChatClient
	config      *config.Config
	currentUser string
}

// NewConversationService creates a new conversation service
func NewConversationService(client ChatClient, cfg *config.Config, currentUser string) *ConversationServiceImpl {
	return &ConversationServiceImpl{
		client:      client,
		config:      cfg,
		currentUser: currentUser,
	}
}

// ListConversations returns the conversations to show in the list screen:
// sorted by last activity descending, truncated to max_recent when set, and
// with hidden display names filtered out
func (s *ConversationServiceImpl) ListConversations(ctx context.Context) ([]ConversationItem, error) {
	convs, err := s.client.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].ActiveAt > convs[j].ActiveAt
	})
	if s.config.MaxRecent > 0 && len(convs) > s.config.MaxRecent {
		convs = convs[:s.config.MaxRecent]
	}

	items := make([]ConversationItem, 0, len(convs))
	for _, conv := range convs {
		name := conv.DisplayName(s.currentUser)
		if s.isHidden(name) {
			continue
		}
		items = append(items, ConversationItem{Conversation: conv, Name: name})
	}
	return items, nil
}

// ResolveConversation finds the first conversation whose display name
// contains ref, ignoring case. Hidden conversations stay resolvable here:
// the hide filter only applies to the list screen.
func (s *ConversationServiceImpl) ResolveConversation(ctx context.Context, ref string) (ConversationItem, bool, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ConversationItem{}, false, fmt.Errorf("conversation reference: %w", ErrMissingArgument)
	}

	convs, err := s.client.ListConversations(ctx)
	if err != nil {
		return ConversationItem{}, false, fmt.Errorf("failed to list conversations: %w", err)
	}

	needle := strings.ToLower(ref)
	for _, conv := range convs {
		name := conv.DisplayName(s.currentUser)
		if strings.Contains(strings.ToLower(name), needle) {
			return ConversationItem{Conversation: conv, Name: name}, true, nil
		}
	}
	return ConversationItem{}, false, nil
}

func (s *ConversationServiceImpl) isHidden(name string) bool {
	lower := strings.ToLower(name)
	for _, h := range s.config.HideNames {
		if h == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(h)) {
			return true
		}
	}
	return false
}
