package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
)

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"validation", apperror.Validation("Query is too long."), http.StatusBadRequest, "Query is too long."},
		{"authentication", apperror.Unauthenticated("Could not validate credentials"), http.StatusUnauthorized, "Could not validate credentials"},
		{"not found", apperror.NotFound("User not found"), http.StatusNotFound, "User not found"},
		{"conflict", apperror.Conflict("Email already registered"), http.StatusConflict, "Email already registered"},
		{"query", apperror.Query(errors.New("OpenAI API error: timeout")), http.StatusBadRequest, "OpenAI API error: timeout"},
		{"store", apperror.Store("Error retrieving query response", errors.New("io")), http.StatusBadRequest, "Error retrieving query response: io"},
		{"wrapped", fmt.Errorf("handler: %w", apperror.NotFound("Query response not found")), http.StatusNotFound, "handler: Query response not found"},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.detail, body.Detail)
		})
	}
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]int{"query_id": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"query_id":1}`, rec.Body.String())
}
