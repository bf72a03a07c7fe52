package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsMapStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound},
		{"conflict", NewConflictError("dup"), http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError},
		{"bad request", NewBadRequestError("eh"), http.StatusBadRequest},
		{"unavailable", NewUnavailableError("off"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "not_found: weblog not found", NewNotFoundError("weblog not found").Error())
	assert.Equal(t, "validation_error: bad page (page must be >= 0)",
		NewValidationError("bad page", "page must be >= 0").Error())
}

func TestGetAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("search: %w", NewUnavailableError("atompub disabled"))

	appErr := GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.True(t, IsUnavailableError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.True(t, IsForbiddenError(fmt.Errorf("moderate: %w", NewForbiddenError("no permission"))))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: users.user_name")))
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'x' for key")))
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
}
