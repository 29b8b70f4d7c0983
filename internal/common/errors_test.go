package common

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	wrapped := NewUserError("could not load datasets", ErrSourceMissing)

	assert.Equal(t, "could not load datasets: source file not found", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrSourceMissing)

	var userErr *UserError
	assert.ErrorAs(t, wrapped, &userErr)
	assert.Equal(t, "could not load datasets", userErr.UserMessage)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := NewUserError("nothing to export", nil)
	assert.Equal(t, "nothing to export", err.Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", ErrRateLimit, true},
		{"wrapped rate limit", NewUserError("sheets write failed", ErrRateLimit), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"retryable flag", &RetryableError{Err: errors.New("flaky"), Retryable: true}, true},
		{"non-retryable flag", &RetryableError{Err: errors.New("fatal"), Retryable: false}, false},
		{"plain error", errors.New("boom"), false},
		{"not found", ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
