package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kacperh/games-library-be/internal/models"
)

// ErrInvalidToken is returned when a token fails signature, structure or
// expiry checks. Callers get no detail about which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims defines the JWT claims structure.
type Claims struct {
	UserID   string      `json:"userId"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens. The signing secret
// is injected once at startup and never changes afterwards.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. An empty secret is a startup
// error, not something to discover on the first login.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token embedding the user's identity and role.
func (ts *TokenService) Issue(userID, username string, role models.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// Validate parses and validates a token string. Expiry is checked with zero
// leeway: a token expired by any margin is rejected.
func (ts *TokenService) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
