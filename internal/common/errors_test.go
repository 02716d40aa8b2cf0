package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		want   string
		status int
	}{
		{name: "no response", status: 0, want: "Network error occurred"},
		{name: "not found ignores detail", status: http.StatusNotFound, detail: "nope", want: "Requested data not found"},
		{name: "bad request with detail", status: http.StatusBadRequest, detail: "bad grade", want: "bad grade"},
		{name: "bad request without detail", status: http.StatusBadRequest, want: "Invalid request"},
		{name: "server error", status: http.StatusInternalServerError, detail: "trace", want: "Server error occurred"},
		{name: "other ignores detail", status: http.StatusTeapot, detail: "short and stout", want: "Unknown error occurred"},
		{name: "other without detail", status: http.StatusBadGateway, want: "Unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusMessage(tt.status, tt.detail))
		})
	}
}

func TestRequestFailure(t *testing.T) {
	cause := context.DeadlineExceeded
	rf := NewRequestFailure(0, "", cause)

	assert.Equal(t, "request failed: Network error occurred", rf.Error())
	assert.ErrorIs(t, rf, context.DeadlineExceeded)

	wrapped := fmt.Errorf("fetch trends: %w", NewRequestFailure(http.StatusNotFound, "", nil))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsNotFound(rf))
	assert.Contains(t, wrapped.Error(), "status 404")

	var got *RequestFailure
	require.True(t, errors.As(wrapped, &got))
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "Server error occurred", UserMessage(fmt.Errorf("x: %w", NewRequestFailure(500, "", nil))))
	assert.Equal(t, "pick a pattern", UserMessage(NewUserError("pick a pattern", ErrEmptySelection)))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))

	ue := NewUserError("pick a pattern", ErrEmptySelection)
	assert.ErrorIs(t, ue, ErrEmptySelection)
	assert.Equal(t, "pick a pattern: no patterns selected", ue.Error())
}
