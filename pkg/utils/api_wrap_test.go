package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation error", NewValidationError("grams", "must be positive"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("record: %w", ErrValidation), http.StatusBadRequest},
		{"student", ErrStudentNotFound, http.StatusNotFound},
		{"food", ErrFoodNotFound, http.StatusNotFound},
		{"pack entry", ErrPackEntryNotFound, http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"login taken", ErrLoginAlreadyExists, http.StatusConflict},
		{"database", ErrDatabaseError, http.StatusInternalServerError},
		{"unknown", errors.New("kaboom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("trace_id", "trace-1")

			HandleServiceError(c, tc.err)

			assert.Equal(t, tc.code, w.Code)
			var body APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, "trace-1", body.TraceID)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	assert.Equal(t, "grams: must be positive", NewValidationError("grams", "must be positive").Error())
	assert.Equal(t, "bad input", NewValidationError("", "bad input").Error())
	assert.True(t, errors.Is(NewValidationError("x", "y"), ErrValidation))
	assert.True(t, errors.Is(ErrFoodNotFound, ErrNotFound))
}
