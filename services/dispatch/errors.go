package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a dispatch failure.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindNetworkFailure    Kind = "network_failure"
	KindBackendRejected   Kind = "backend_rejected"
	KindMalformedResponse Kind = "malformed_response"
)

const (
	msgEmptyUtterance  = "message cannot be empty"
	msgInvalidResponse = "Invalid response format"
	msgRequestFailed   = "Request failed"
)

// Error is the typed failure returned by Send.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int  // HTTP status when the backend answered
	Terminal   bool // backend asked not to retry
	Attempts   int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt may succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetworkFailure:
		return true
	case KindBackendRejected:
		return !e.Terminal
	default:
		return false
	}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == kind
}

func newNetworkError(err error) *Error {
	return &Error{Kind: KindNetworkFailure, Message: "failed to reach recommendation backend", Err: err}
}

func newMalformedError(err error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: msgInvalidResponse, Err: err}
}

// ValidateUtterance trims utterance and rejects it when nothing is left.
func ValidateUtterance(utterance string) (string, error) {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return "", &Error{Kind: KindInvalidInput, Message: msgEmptyUtterance}
	}
	return text, nil
}
