package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrRateLimited = errors.New("rate limited")
	ErrUnavailable = errors.New("provider unavailable")
	ErrRejected    = errors.New("request rejected")
	ErrBadOutput   = errors.New("output does not match schema")
	ErrTruncated   = errors.New("output truncated at max tokens")
)

// APIError is a classified provider failure.
type APIError struct {
	Provider string
	Kind     error
	Status   int

	// RetryAfter is the server's requested wait, zero when unknown.
	RetryAfter time.Duration

	// Body is the offending output for ErrBadOutput and ErrTruncated.
	Body json.RawMessage
	Err  error
}

func (e *APIError) Error() string {
	msg := e.Kind.Error()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classify turns an HTTP status from a provider SDK into an APIError.
// A zero status is a transport failure.
func classify(provider string, status int, err error) *APIError {
	kind := ErrUnavailable
	switch {
	case status == http.StatusTooManyRequests:
		kind = ErrRateLimited
	case status >= 400 && status < 500:
		kind = ErrRejected
	}
	return &APIError{Provider: provider, Kind: kind, Status: status, Err: err}
}

// from stamps provider on an APIError that was raised without one.
func from(provider string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Provider == "" {
		apiErr.Provider = provider
	}
	return err
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable) || errors.Is(err, ErrBadOutput)
}
