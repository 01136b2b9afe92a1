package services

import "errors"

// Standard service errors
var (
	// Backend errors
	ErrBackendUnavailable = errors.New("keybase backend unavailable")
	ErrTimeout            = errors.New("operation timed out")

	// Data errors
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input provided")
	ErrMissingArgument = errors.New("missing argument")

	// Attachment errors
	ErrFileNotFound = errors.New("file does not exist")

	// Conversation errors
	ErrConversationNotFound = errors.New("conversation not found")
)

// IsRetryableError determines if an error should be retried
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrBackendUnavailable) ||
		errors.Is(err, ErrTimeout)
}

// IsPermanentError determines if an error is permanent and should not be retried
func IsPermanentError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrConversationNotFound)
}
