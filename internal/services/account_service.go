package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kacperh/games-library-be/internal/auth"
	"github.com/kacperh/games-library-be/internal/models"
)

// UserStore is the persistence contract required by the account service.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

// AccountServiceProvider defines the interface for account services.
type AccountServiceProvider interface {
	Register(ctx context.Context, username, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

// AccountService provides registration and login logic.
type AccountService struct {
	store  UserStore
	tokens *auth.TokenService
}

// NewAccountService creates a new AccountService.
func NewAccountService(store UserStore, tokens *auth.TokenService) *AccountService {
	return &AccountService{store: store, tokens: tokens}
}

// dummyHash is compared against when a login names an unknown user, so the
// unknown-user and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register creates a new user account with the regular user role. Username
// uniqueness (case-insensitive) is enforced by the store.
func (s *AccountService) Register(ctx context.Context, username, password string) (models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown usernames
// and wrong passwords return the identical error so that failed logins do
// not reveal which accounts exist.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.Username, user.Role)
}

// ChangePassword verifies the current password, then hashes and stores a
// new one.
func (s *AccountService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdatePasswordHash(ctx, userID, string(hashed))
}

// EnsureAdmin creates an admin account with the given credentials if no
// user with that username exists yet. Called once at startup.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateUser(ctx, models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	})
}
