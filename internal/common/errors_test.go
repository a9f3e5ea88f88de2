// File: internal/common/errors_test.go
package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	detailed := ErrNotFound.WithDetails("Listing not found.")

	assert.Equal(t, "Listing not found.", detailed.Details)
	assert.Nil(t, ErrNotFound.Details)
	assert.Equal(t, ErrNotFound.Code, detailed.Code)
	assert.Equal(t, ErrNotFound.StatusCode, detailed.StatusCode)
}

func TestErrorsIs_MatchesSentinelAfterWithDetails(t *testing.T) {
	err := ErrConflict.WithDetails("duplicate")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestErrorsIs_MatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("repository: %w", ErrNotFound.WithDetails("gone"))

	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestIsAPIError(t *testing.T) {
	apiErr, ok := IsAPIError(ErrBadRequest.WithDetails("nope"))
	assert.True(t, ok)
	assert.Equal(t, ErrBadRequest.Code, apiErr.Code)

	_, ok = IsAPIError(errors.New("plain error"))
	assert.False(t, ok)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, CheckPassword("s3cret-password", hash))
	assert.Error(t, CheckPassword("wrong-password", hash))
}
