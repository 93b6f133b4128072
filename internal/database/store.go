package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kacperh/games-library-be/internal/models"
	"github.com/kacperh/games-library-be/internal/services"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store persists users, catalog games and library associations in SQLite.
// It implements the services.UserStore and services.GameStore contracts.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation reports whether err is a SQLite unique or primary key
// constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

// CreateUser inserts a new user. The unique index on username (case
// insensitive) is the arbiter for duplicates, including concurrent ones.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash, role) VALUES (?, ?, ?, ?)",
		user.ID, user.Username, user.PasswordHash, string(user.Role))
	if isUniqueViolation(err) {
		return services.ErrDuplicateUsername
	}
	return err
}

// GetUserByUsername retrieves a user by username, matched case-insensitively,
// including the password hash.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE username = ? COLLATE NOCASE",
		username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, services.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID, including the password hash.
func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, role, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, services.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdatePasswordHash replaces the stored password hash for a user.
func (s *Store) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return services.ErrUserNotFound
	}
	return nil
}

// CreateGame inserts a new catalog game.
func (s *Store) CreateGame(ctx context.Context, game models.Game) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO games (id, title, description) VALUES (?, ?, ?)",
		game.ID, game.Title, game.Description)
	return err
}

// UpdateGame updates a catalog game's title and description.
func (s *Store) UpdateGame(ctx context.Context, game models.Game) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE games SET title = ?, description = ? WHERE id = ?",
		game.Title, game.Description, game.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return services.ErrGameNotFound
	}
	return nil
}

// DeleteGame removes a catalog game. Library associations referencing it are
// removed by the foreign key cascade.
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return services.ErrGameNotFound
	}
	return nil
}

// GetGameByID retrieves a single catalog game.
func (s *Store) GetGameByID(ctx context.Context, id string) (models.Game, error) {
	var game models.Game
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, description, created_at FROM games WHERE id = ?", id)
	err := row.Scan(&game.ID, &game.Title, &game.Description, &game.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Game{}, services.ErrGameNotFound
		}
		return models.Game{}, err
	}
	return game, nil
}

// ListGames returns the full catalog ordered by creation.
func (s *Store) ListGames(ctx context.Context) ([]models.Game, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description, created_at FROM games ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(&game.ID, &game.Title, &game.Description, &game.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}

// CreateAssociation adds a game to a user's library. The composite primary
// key on (user_id, game_id) rejects duplicates atomically.
func (s *Store) CreateAssociation(ctx context.Context, assoc models.UserGame) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO user_games (user_id, game_id) VALUES (?, ?)",
		assoc.UserID, assoc.GameID)
	if isUniqueViolation(err) {
		return services.ErrAlreadyOwned
	}
	return err
}

// DeleteAssociation removes a game from a user's library.
func (s *Store) DeleteAssociation(ctx context.Context, userID, gameID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM user_games WHERE user_id = ? AND game_id = ?", userID, gameID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return services.ErrNotOwned
	}
	return nil
}

// HasAssociation reports whether a user already has a game in their library.
func (s *Store) HasAssociation(ctx context.Context, userID, gameID string) (bool, error) {
	var one int
	row := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM user_games WHERE user_id = ? AND game_id = ?", userID, gameID)
	err := row.Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListGamesForUser returns the games in a user's library in the order they
// were added.
func (s *Store) ListGamesForUser(ctx context.Context, userID string) ([]models.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.title, g.description, g.created_at
		FROM user_games ug
		JOIN games g ON g.id = ug.game_id
		WHERE ug.user_id = ?
		ORDER BY ug.rowid`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(&game.ID, &game.Title, &game.Description, &game.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, rows.Err()
}
