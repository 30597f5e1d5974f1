package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/llm-query-gateway/internal/apperror"
)

// ErrorBody is the body of every error response
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON sends data as the JSON body
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Detail sends an error response with the given status and detail
func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// Error maps err to a status code and sends its detail. Errors without an
// application kind are logged and hidden behind a generic 500.
func Error(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Unhandled error")
		Detail(w, status, "Internal server error")
		return
	}
	Detail(w, status, err.Error())
}

// StatusFor returns the HTTP status for an application error kind
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrQuery), errors.Is(err, apperror.ErrStore):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
