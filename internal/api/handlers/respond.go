package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kacperh/games-library-be/internal/auth"
	"github.com/kacperh/games-library-be/internal/services"
)

// BaseResponse is the uniform envelope returned for every message-bearing
// response, success or failure.
type BaseResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// genericFailureMessage is what clients see for unexpected errors. Internal
// detail goes to the log, never over the wire.
const genericFailureMessage = "something went wrong"

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteMessage writes a success envelope.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, BaseResponse{Error: false, Message: message})
}

// WriteError translates a failure into the uniform envelope. Domain errors
// keep their message; anything uncategorized is logged and reported
// generically.
func WriteError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Unexpected error")
		message = genericFailureMessage
	}
	WriteJSON(w, status, BaseResponse{Error: true, Message: message})
}

// WriteBadRequest writes a precondition failure envelope.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, BaseResponse{Error: true, Message: message})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrNoIdentity):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrNotOwned),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrAlreadyOwned):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
