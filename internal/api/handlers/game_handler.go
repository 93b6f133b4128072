package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/kacperh/games-library-be/internal/auth"
	"github.com/kacperh/games-library-be/internal/services"
)

// GameHandler handles HTTP requests for the catalog and user libraries.
type GameHandler struct {
	service services.GameServiceProvider
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(service services.GameServiceProvider) *GameHandler {
	return &GameHandler{service: service}
}

// GamePayload defines the structure for catalog create/update requests.
type GamePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListCatalog returns every game in the catalog.
func (h *GameHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.ListCatalog(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, games)
}

// Get returns a single catalog game by ID.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, err := h.service.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, game)
}

// AddToCatalog creates a new catalog game. Admin only.
func (h *GameHandler) AddToCatalog(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.CurrentUser(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var payload GamePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if payload.Title == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	game, err := h.service.AddGameToCatalog(r.Context(), claims, payload.Title, payload.Description)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to add game to catalog")
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, game)
}

// Update edits a catalog game. Admin only.
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.CurrentUser(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var payload GamePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if payload.Title == "" {
		WriteBadRequest(w, "title is required")
		return
	}

	game, err := h.service.UpdateGameInCatalog(r.Context(), claims, chi.URLParam(r, "id"), payload.Title, payload.Description)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, game)
}

// RemoveFromCatalog deletes a catalog game. Admin only.
func (h *GameHandler) RemoveFromCatalog(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.CurrentUser(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.service.RemoveGameFromCatalog(r.Context(), claims, chi.URLParam(r, "id")); err != nil {
		WriteError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "game removed from catalog")
}

// ListMine returns the authenticated user's library.
func (h *GameHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.CurrentUser(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.service.ListUserGames(r.Context(), claims.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, games)
}

// AddToLibrary adds a catalog game to the authenticated user's library.
func (h *GameHandler) AddToLibrary(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.CurrentUser(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	assoc, err := h.service.AddGameToUser(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, assoc)
}

// RemoveFromLibrary removes a game from the authenticated user's library.
func (h *GameHandler) RemoveFromLibrary(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.CurrentUser(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.service.RemoveGameFromUser(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		WriteError(w, err)
		return
	}

	WriteMessage(w, http.StatusOK, "game removed from library")
}
