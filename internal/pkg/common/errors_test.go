package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsCustomError(t *testing.T) {
	assert.Nil(t, AsCustomError(nil))

	wrapped := fmt.Errorf("login: %w", ErrInvalidCredentials)
	ce := AsCustomError(wrapped)
	assert.Equal(t, http.StatusUnauthorized, ce.Status)
	assert.Equal(t, "Invalid email or password", ce.Message)

	ce = AsCustomError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, ce.Status)
	assert.Equal(t, ErrCodeInternalError, ce.Code)
}

func TestCustomErrorWrapKeepsIdentity(t *testing.T) {
	cause := errors.New("duplicate key")
	err := ErrEmailTaken.Wrap(cause)

	assert.True(t, errors.Is(err, ErrEmailTaken))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrUserNotFound))
}
