package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{Validation("Missing required fields: %s", "phone"), http.StatusBadRequest},
		{StockInsufficient("Chair", 5), http.StatusBadRequest},
		{Conflict("User with this email already exists"), http.StatusBadRequest},
		{NotFound("Booking"), http.StatusNotFound},
		{Unauthorized("Invalid credentials"), http.StatusUnauthorized},
		{Backend("remote", errors.New("dial tcp: refused")), http.StatusInternalServerError},
		{Internal("boom", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Error())
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Insufficient stock for Chair. Available: 5", StockInsufficient("Chair", 5).Message)
	assert.Equal(t, "Booking not found", NotFound("Booking").Message)
}

func TestBusinessClassification(t *testing.T) {
	assert.True(t, IsBusiness(StockInsufficient("Chair", 0)))
	assert.True(t, IsBusiness(fmt.Errorf("wrapped: %w", NotFound("Item"))))
	assert.False(t, IsBusiness(Backend("remote", errors.New("timeout"))))
	assert.False(t, IsBusiness(errors.New("untyped")))
	assert.False(t, IsBusiness(nil))
}

func TestUnwrapAndAs(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("listing items: %w", Backend("remote", cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindBackend, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.Equal(t, KindInternal, AsAppError(cause).Kind)
	assert.True(t, Is(err, KindBackend))
}
