package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrAccountExists        = errors.New("account already exists")
	ErrTripNotFound         = errors.New("trip not found")
	ErrSessionNotFound      = errors.New("triage session not found")
	ErrUnsupportedMedia     = errors.New("unsupported media type")
	ErrTooManyRequests      = errors.New("too many requests")
	ErrServiceUnavailable   = errors.New("service unavailable")
	ErrUpstream             = errors.New("upstream provider error")
	ErrTranscriptionFailed  = errors.New("transcription failed")
	ErrDatabaseError        = errors.New("database error")
	ErrUnexpectedBehaviorAI = errors.New("unexpected response from AI provider")
)

// ProviderError carries the message an external provider reported for a
// failed call. Stage names the collaborator call that failed.
type ProviderError struct {
	Stage   string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrUpstream
}

// NewTranscriptionError reports a stage 1 failure so callers can tell it
// apart from extraction problems.
func NewTranscriptionError(message string, err error) error {
	return &ProviderError{Stage: "transcription", Message: message, Err: errors.Join(ErrTranscriptionFailed, err)}
}

// NotConfigured reports a collaborator that has no credentials.
func NotConfigured(service string) error {
	return fmt.Errorf("%w: %s is not configured", ErrServiceUnavailable, service)
}
