package disol_errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"validation", Validation("user_id is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"configuration", Configuration("OPENAI_API_KEY is required"), http.StatusBadRequest, "CONFIGURATION_ERROR"},
		{"upstream", Upstream("image generation failed", nil), http.StatusInternalServerError, "UPSTREAM_ERROR"},
		{"method", MethodNotAllowed(), http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"plain", errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"wrapped", fmt.Errorf("handler: %w", Validation("bad")), http.StatusBadRequest, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
			assert.Equal(t, tt.code, KindOf(tt.err).String())
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("status 402")
	err := Upstream("image generation failed", cause)

	assert.Equal(t, "image generation failed", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, Upstream("x", nil), ErrUpstream)
	assert.ErrorIs(t, Validation("x"), ErrInvalidInput)
	assert.ErrorIs(t, Configuration("x"), ErrNotConfigured)
	assert.Equal(t, "user_id is required", Validation("%s is required", "user_id").Error())
}
