package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformError_Unwrap(t *testing.T) {
	err := fmt.Errorf("fetch posts: %w", NewPlatformError("linkedin", http.StatusUnauthorized))

	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, http.StatusUnauthorized, GetStatus(err))
	assert.Equal(t, "fetch posts: linkedin API error: 401", err.Error())

	for _, status := range []int{http.StatusForbidden, http.StatusBadGateway, http.StatusServiceUnavailable} {
		other := NewPlatformError("instagram", status)
		assert.False(t, IsUnauthorized(other))
		assert.Equal(t, status, GetStatus(other))
	}
}

func TestSentinels(t *testing.T) {
	refresh := fmt.Errorf("linkedin: %w", ErrRefreshFailed)
	assert.True(t, IsRefreshFailed(refresh))
	assert.False(t, IsReadOnly(refresh))
	assert.Equal(t, 0, GetStatus(refresh))

	readOnly := fmt.Errorf("static credentials: %w", ErrReadOnly)
	assert.True(t, IsReadOnly(readOnly))
	assert.False(t, IsRefreshFailed(errors.New("other")))
}
