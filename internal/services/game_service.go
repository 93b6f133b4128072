package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/kacperh/games-library-be/internal/auth"
	"github.com/kacperh/games-library-be/internal/models"
)

// GameStore is the persistence contract required by the game service.
type GameStore interface {
	CreateGame(ctx context.Context, game models.Game) error
	UpdateGame(ctx context.Context, game models.Game) error
	DeleteGame(ctx context.Context, id string) error
	GetGameByID(ctx context.Context, id string) (models.Game, error)
	ListGames(ctx context.Context) ([]models.Game, error)
	CreateAssociation(ctx context.Context, assoc models.UserGame) error
	DeleteAssociation(ctx context.Context, userID, gameID string) error
	HasAssociation(ctx context.Context, userID, gameID string) (bool, error)
	ListGamesForUser(ctx context.Context, userID string) ([]models.Game, error)
}

// GameServiceProvider defines the interface for game services.
type GameServiceProvider interface {
	ListCatalog(ctx context.Context) ([]models.Game, error)
	GetGame(ctx context.Context, gameID string) (models.Game, error)
	AddGameToCatalog(ctx context.Context, identity *auth.Claims, title, description string) (models.Game, error)
	UpdateGameInCatalog(ctx context.Context, identity *auth.Claims, gameID, title, description string) (models.Game, error)
	RemoveGameFromCatalog(ctx context.Context, identity *auth.Claims, gameID string) error
	ListUserGames(ctx context.Context, userID string) ([]models.Game, error)
	AddGameToUser(ctx context.Context, userID, gameID string) (models.UserGame, error)
	RemoveGameFromUser(ctx context.Context, userID, gameID string) error
}

// GameService provides catalog maintenance and per-user library logic.
type GameService struct {
	store GameStore
}

// NewGameService creates a new GameService.
func NewGameService(store GameStore) *GameService {
	return &GameService{store: store}
}

// requireAdmin checks the caller's role before any store access happens.
func requireAdmin(identity *auth.Claims) error {
	if identity == nil {
		return auth.ErrNoIdentity
	}
	if identity.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

// ListCatalog returns every game in the catalog.
func (s *GameService) ListCatalog(ctx context.Context) ([]models.Game, error) {
	return s.store.ListGames(ctx)
}

// GetGame returns a single catalog game.
func (s *GameService) GetGame(ctx context.Context, gameID string) (models.Game, error) {
	return s.store.GetGameByID(ctx, gameID)
}

// AddGameToCatalog creates a new catalog game. Admin only.
func (s *GameService) AddGameToCatalog(ctx context.Context, identity *auth.Claims, title, description string) (models.Game, error) {
	if err := requireAdmin(identity); err != nil {
		return models.Game{}, err
	}

	game := models.Game{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
	}
	if err := s.store.CreateGame(ctx, game); err != nil {
		return models.Game{}, err
	}
	return game, nil
}

// UpdateGameInCatalog edits a catalog game's title and description. Admin only.
func (s *GameService) UpdateGameInCatalog(ctx context.Context, identity *auth.Claims, gameID, title, description string) (models.Game, error) {
	if err := requireAdmin(identity); err != nil {
		return models.Game{}, err
	}

	game := models.Game{ID: gameID, Title: title, Description: description}
	if err := s.store.UpdateGame(ctx, game); err != nil {
		return models.Game{}, err
	}
	return s.store.GetGameByID(ctx, gameID)
}

// RemoveGameFromCatalog deletes a catalog game and, through the store's
// cascade, every user library entry for it. Admin only.
func (s *GameService) RemoveGameFromCatalog(ctx context.Context, identity *auth.Claims, gameID string) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	return s.store.DeleteGame(ctx, gameID)
}

// ListUserGames returns the user's library in the order games were added.
func (s *GameService) ListUserGames(ctx context.Context, userID string) ([]models.Game, error) {
	return s.store.ListGamesForUser(ctx, userID)
}

// AddGameToUser adds a catalog game to the user's library. Adding the same
// game twice fails with ErrAlreadyOwned; the store's composite key backs
// this check under concurrent requests.
func (s *GameService) AddGameToUser(ctx context.Context, userID, gameID string) (models.UserGame, error) {
	if _, err := s.store.GetGameByID(ctx, gameID); err != nil {
		return models.UserGame{}, err
	}

	owned, err := s.store.HasAssociation(ctx, userID, gameID)
	if err != nil {
		return models.UserGame{}, err
	}
	if owned {
		return models.UserGame{}, ErrAlreadyOwned
	}

	assoc := models.UserGame{UserID: userID, GameID: gameID}
	if err := s.store.CreateAssociation(ctx, assoc); err != nil {
		return models.UserGame{}, err
	}
	return assoc, nil
}

// RemoveGameFromUser removes a game from the user's library. Removing a
// game that is not there fails with ErrNotOwned, also on repeat calls.
func (s *GameService) RemoveGameFromUser(ctx context.Context, userID, gameID string) error {
	return s.store.DeleteAssociation(ctx, userID, gameID)
}
