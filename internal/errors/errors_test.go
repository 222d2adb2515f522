package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", Validation("Title is required"), http.StatusBadRequest, "VALIDATION_ERROR", "Title is required"},
		{"unauthorized", Unauthorized("Invalid username or password"), http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password"},
		{"not found", NotFound("Task"), http.StatusNotFound, "NOT_FOUND", "Task not found"},
		{"conflict", Conflict("Username already exists"), http.StatusConflict, "CONFLICT", "Username already exists"},
		{"wrapped not found", fmt.Errorf("get task: %w", NotFound("Task")), http.StatusNotFound, "NOT_FOUND", "Task not found"},
		{"bare sentinel", ErrNotFound, http.StatusNotFound, "NOT_FOUND", "not found"},
		{"unclassified", errors.New("dial tcp: refused"), http.StatusInternalServerError, "INTERNAL_ERROR", "Error retrieving tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err, "Error retrieving tasks", false)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.Empty(t, httpErr.ToErrorResponse().Error)
		})
	}
}

func TestMapErrorToHTTP_ExposeDetail(t *testing.T) {
	raw := errors.New("dial tcp: refused")

	httpErr := MapErrorToHTTP(raw, "Error retrieving tasks", true)
	assert.Equal(t, "dial tcp: refused", httpErr.ToErrorResponse().Error)

	// Domain errors never carry a detail.
	httpErr = MapErrorToHTTP(NotFound("Task"), "Error retrieving task", true)
	assert.Empty(t, httpErr.Detail)
}
