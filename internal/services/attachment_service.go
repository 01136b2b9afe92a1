package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajramos/kbchat-tui/internal/config"
)

// AttachmentServiceImpl implements AttachmentService
type AttachmentServiceImpl struct {
	client ChatClient
	config *config.Config
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(client ChatClient, cfg *config.Config) *AttachmentServiceImpl {
	return &AttachmentServiceImpl{
		client: client,
		config: cfg,
	}
}

// Attach uploads a local file to the conversation. A nonexistent path fails
// locally before any backend call is made.
func (s *AttachmentServiceImpl) Attach(ctx context.Context, spec, filePath string) (string, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return "", fmt.Errorf("file path: %w", ErrMissingArgument)
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file '%s' does not exist: %w", filePath, ErrFileNotFound)
	}

	if _, err := s.client.AttachFile(ctx, spec, filePath); err != nil {
		return "", fmt.Errorf("failed to attach file: %w", err)
	}
	return "File attached successfully.", nil
}

// Download fetches an attachment by identifier into the configured download
// directory, creating the directory if needed
func (s *AttachmentServiceImpl) Download(ctx context.Context, spec, fileID string) (string, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return "", fmt.Errorf("file identifier: %w", ErrMissingArgument)
	}

	dir := config.ExpandPath(s.config.DownloadPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	outPath := filepath.Join(dir, fileID)
	if _, err := s.client.DownloadFile(ctx, spec, fileID, outPath); err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	return fmt.Sprintf("File downloaded successfully to %s.", outPath), nil
}
