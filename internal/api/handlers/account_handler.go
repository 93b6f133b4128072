package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/kacperh/games-library-be/internal/auth"
	"github.com/kacperh/games-library-be/internal/services"
)

// AccountHandler handles HTTP requests for registration and login.
type AccountHandler struct {
	service services.AccountServiceProvider
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service services.AccountServiceProvider) *AccountHandler {
	return &AccountHandler{service: service}
}

// CredentialsPayload defines the structure for register and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func validateCredentials(p CredentialsPayload) string {
	if len(p.Username) < 3 || len(p.Username) > 32 {
		return "username must be between 3 and 32 characters"
	}
	if len(p.Password) < 6 {
		return "password must be at least 6 characters"
	}
	return ""
}

// Register handles new user registration.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if msg := validateCredentials(payload); msg != "" {
		WriteBadRequest(w, msg)
		return
	}

	user, err := h.service.Register(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// Login handles credential verification and token issuance.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ChangePassword handles changing the authenticated user's password.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.CurrentUser(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if len(payload.NewPassword) < 6 {
		WriteBadRequest(w, "password must be at least 6 characters")
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.UserID, payload.CurrentPassword, payload.NewPassword); err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to change password")
		WriteError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "password updated")
}
