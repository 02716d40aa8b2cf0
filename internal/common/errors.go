// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Common application errors.
var (
	// Selection errors.
	ErrEmptySelection    = errors.New("no patterns selected")
	ErrUnknownPatternKey = errors.New("unknown pattern key")

	// Configuration errors.
	ErrMissingConfig   = errors.New("missing configuration")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidArgument = errors.New("invalid argument")
)

// RequestFailure is returned by the API client for network errors, timeouts and
// non-2xx responses. Status is zero when no response was received.
type RequestFailure struct {
	Err     error
	Message string
	Status  int
}

func (e *RequestFailure) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed: %s", e.Message)
}

func (e *RequestFailure) Unwrap() error {
	return e.Err
}

// NewRequestFailure builds a failure from a status code and an optional server detail.
func NewRequestFailure(status int, detail string, err error) *RequestFailure {
	return &RequestFailure{Status: status, Message: StatusMessage(status, detail), Err: err}
}

// StatusMessage maps a response status to the message shown to users. The
// server detail is only surfaced for 400 responses.
func StatusMessage(status int, detail string) string {
	switch {
	case status == 0:
		return "Network error occurred"
	case status == http.StatusNotFound:
		return "Requested data not found"
	case status == http.StatusBadRequest:
		if detail != "" {
			return detail
		}
		return "Invalid request"
	case status == http.StatusInternalServerError:
		return "Server error occurred"
	default:
		return "Unknown error occurred"
	}
}

// IsNotFound reports whether err is a RequestFailure with a 404 status.
func IsNotFound(err error) bool {
	var rf *RequestFailure
	return errors.As(err, &rf) && rf.Status == http.StatusNotFound
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the message to show for err. RequestFailure and UserError
// carry one; anything else falls back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var rf *RequestFailure
	if errors.As(err, &rf) {
		return rf.Message
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.UserMessage
	}
	return err.Error()
}
