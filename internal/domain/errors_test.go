package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	err := NewNotFoundError("customer", "42")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "customer with ID 42 not found", err.Error())
}

func TestNotFoundErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("get customer: %w", NewNotFoundError("customer", "42"))

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorageError("save", "write failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "save")
	assert.Contains(t, err.Error(), "connection reset")
}
