package services_test

import (
	"context"
	"strings"

	"github.com/kacperh/games-library-be/internal/models"
	"github.com/kacperh/games-library-be/internal/services"
)

// fakeUserStore is an in-memory UserStore. It mirrors the real store's
// case-insensitive username uniqueness.
type fakeUserStore struct {
	users map[string]models.User // keyed by lowercased username
	calls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user models.User) error {
	f.calls++
	key := strings.ToLower(user.Username)
	if _, ok := f.users[key]; ok {
		return services.ErrDuplicateUsername
	}
	f.users[key] = user
	return nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	f.calls++
	user, ok := f.users[strings.ToLower(username)]
	if !ok {
		return models.User{}, services.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (models.User, error) {
	f.calls++
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, services.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	f.calls++
	for key, user := range f.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			f.users[key] = user
			return nil
		}
	}
	return services.ErrUserNotFound
}

// fakeGameStore is an in-memory GameStore counting every call, so tests can
// assert that authorization failures never touch the store.
type fakeGameStore struct {
	games  map[string]models.Game
	order  []string
	assocs []models.UserGame
	calls  int
}

func newFakeGameStore() *fakeGameStore {
	return &fakeGameStore{games: map[string]models.Game{}}
}

func (f *fakeGameStore) CreateGame(_ context.Context, game models.Game) error {
	f.calls++
	f.games[game.ID] = game
	f.order = append(f.order, game.ID)
	return nil
}

func (f *fakeGameStore) UpdateGame(_ context.Context, game models.Game) error {
	f.calls++
	existing, ok := f.games[game.ID]
	if !ok {
		return services.ErrGameNotFound
	}
	existing.Title = game.Title
	existing.Description = game.Description
	f.games[game.ID] = existing
	return nil
}

func (f *fakeGameStore) DeleteGame(_ context.Context, id string) error {
	f.calls++
	if _, ok := f.games[id]; !ok {
		return services.ErrGameNotFound
	}
	delete(f.games, id)
	kept := f.assocs[:0]
	for _, assoc := range f.assocs {
		if assoc.GameID != id {
			kept = append(kept, assoc)
		}
	}
	f.assocs = kept
	return nil
}

func (f *fakeGameStore) GetGameByID(_ context.Context, id string) (models.Game, error) {
	f.calls++
	game, ok := f.games[id]
	if !ok {
		return models.Game{}, services.ErrGameNotFound
	}
	return game, nil
}

func (f *fakeGameStore) ListGames(_ context.Context) ([]models.Game, error) {
	f.calls++
	games := []models.Game{}
	for _, id := range f.order {
		if game, ok := f.games[id]; ok {
			games = append(games, game)
		}
	}
	return games, nil
}

func (f *fakeGameStore) CreateAssociation(_ context.Context, assoc models.UserGame) error {
	f.calls++
	for _, existing := range f.assocs {
		if existing.UserID == assoc.UserID && existing.GameID == assoc.GameID {
			return services.ErrAlreadyOwned
		}
	}
	f.assocs = append(f.assocs, assoc)
	return nil
}

func (f *fakeGameStore) DeleteAssociation(_ context.Context, userID, gameID string) error {
	f.calls++
	for i, assoc := range f.assocs {
		if assoc.UserID == userID && assoc.GameID == gameID {
			f.assocs = append(f.assocs[:i], f.assocs[i+1:]...)
			return nil
		}
	}
	return services.ErrNotOwned
}

func (f *fakeGameStore) HasAssociation(_ context.Context, userID, gameID string) (bool, error) {
	f.calls++
	for _, assoc := range f.assocs {
		if assoc.UserID == userID && assoc.GameID == gameID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGameStore) ListGamesForUser(_ context.Context, userID string) ([]models.Game, error) {
	f.calls++
	games := []models.Game{}
	for _, assoc := range f.assocs {
		if assoc.UserID == userID {
			if game, ok := f.games[assoc.GameID]; ok {
				games = append(games, game)
			}
		}
	}
	return games, nil
}
