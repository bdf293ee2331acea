package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockErrors(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, ErrMockNetwork, "network error")
	assert.EqualError(t, ErrMockFileNotFound, "file not found")
	assert.EqualError(t, ErrMockBackend, "backend error")
}

func TestMockErrors_MatchWhenWrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("GET /api/tasks: %w", ErrMockNetwork)
	assert.ErrorIs(t, wrapped, ErrMockNetwork)
	assert.False(t, errors.Is(wrapped, ErrMockBackend))
}
