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
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("lookup project: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"validation", NewValidationError("north", "required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"authorization", &AuthorizationError{Message: "nope", RedirectTo: "/"}, http.StatusForbidden, "FORBIDDEN"},
		{"upstream", &UpstreamError{Service: "geocode", Err: errors.New("dial tcp")}, http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestValidationError_FieldsSurviveMapping(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"email": "already taken", "display_name": "already taken"}}

	resp := MapErrorToHTTP(err).ToErrorResponse()

	assert.Equal(t, "already taken", resp.Fields["email"])
	assert.Equal(t, "validation failed: display_name: already taken; email: already taken", err.Error())
}
