package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dreamshare/dreams-backend/internal/model"
)

// ErrorResponse is the single error body rendered for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
}

// StatusCode maps an error kind to its HTTP status. Unrecognized errors are
// internal faults.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrConflict):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		// Ownership failures are reported as 401 in this API.
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError writes a standardized error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Message: message})
}

// WriteDomainError maps a service/store error to its status code. Internal
// faults get a generic message so storage details never leak to clients.
func WriteDomainError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Msg("internal error")
		WriteError(w, code, "something went wrong, please try again later")
		return
	}
	WriteError(w, code, err.Error())
}
