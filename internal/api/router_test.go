package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kacperh/games-library-be/internal/api"
	"github.com/kacperh/games-library-be/internal/auth"
	"github.com/kacperh/games-library-be/internal/database"
	"github.com/kacperh/games-library-be/internal/models"
	"github.com/kacperh/games-library-be/internal/services"
)

// newTestServer wires the real router, services and an in-memory store, and
// seeds one admin account (admin / admin-password).
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.New(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	store := database.NewStore(db)

	tokens, err := auth.NewTokenService("router-test-secret-0123456789", time.Hour)
	require.NoError(t, err)

	accounts := services.NewAccountService(store, tokens)
	games := services.NewGameService(store)
	require.NoError(t, accounts.EnsureAdmin(context.Background(), "admin", "admin-password"))

	srv := httptest.NewServer(api.NewRouter("http://localhost:3000", tokens, accounts, games))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func register(t *testing.T, srv *httptest.Server, username, password string) models.User {
	t.Helper()
	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var user models.User
	require.NoError(t, json.Unmarshal(raw, &user))
	return user
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	user := register(t, srv, "alice", "pw123456")
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)

	// The password hash must never appear in the response.
	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/register", "", map[string]string{
		"username": "bob", "password": "pw123456",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, string(raw), "passwordHash")
	assert.NotContains(t, string(raw), "password_hash")

	login(t, srv, "alice", "pw123456")
}

func TestRegister_Duplicate(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "alice", "pw123456")

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/register", "", map[string]string{
		"username": "ALICE", "password": "other-password",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var envelope struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.True(t, envelope.Error)
	assert.NotEmpty(t, envelope.Message)
}

func TestRegister_InvalidPayload(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "pw123456"},
		{"short password", "alice", "pw"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/register", "", map[string]string{
				"username": tt.username, "password": tt.password,
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(raw), `"error":true`)
		})
	}
}

func TestLogin_FailureBodiesAreIdentical(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "alice", "pw123456")

	respWrongPw, bodyWrongPw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/login", "", map[string]string{
		"username": "alice", "password": "not-the-password",
	})
	respUnknown, bodyUnknown := doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/login", "", map[string]string{
		"username": "nobody", "password": "pw123456",
	})

	assert.Equal(t, http.StatusUnauthorized, respWrongPw.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
	assert.Equal(t, bodyWrongPw, bodyUnknown, "login failures must not reveal which check failed")
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, raw := doRequest(t, http.MethodGet, srv.URL+"/api/v1/me/games", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(raw), `"error":true`)

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/v1/me/games", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogMutation_ForbiddenForRegularUser(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "alice", "pw123456")
	token := login(t, srv, "alice", "pw123456")

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/games", token, map[string]string{
		"title": "Quake",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(raw), `"error":true`)
}

func TestLibraryFlow(t *testing.T) {
	srv := newTestServer(t)

	adminToken := login(t, srv, "admin", "admin-password")
	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/games", adminToken, map[string]string{
		"title": "Quake", "description": "classic shooter",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var game models.Game
	require.NoError(t, json.Unmarshal(raw, &game))

	register(t, srv, "alice", "pw123456")
	token := login(t, srv, "alice", "pw123456")

	// Unknown game
	resp, _ = doRequest(t, http.MethodPost, srv.URL+"/api/v1/me/games/no-such-game", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Add to library
	resp, _ = doRequest(t, http.MethodPost, srv.URL+"/api/v1/me/games/"+game.ID, token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Adding twice is a conflict
	resp, _ = doRequest(t, http.MethodPost, srv.URL+"/api/v1/me/games/"+game.ID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The library lists the game
	resp, raw = doRequest(t, http.MethodGet, srv.URL+"/api/v1/me/games", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var library []models.Game
	require.NoError(t, json.Unmarshal(raw, &library))
	require.Len(t, library, 1)
	assert.Equal(t, "Quake", library[0].Title)

	// Remove, then remove again
	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/v1/me/games/"+game.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/v1/me/games/"+game.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogAdminFlow(t *testing.T) {
	srv := newTestServer(t)
	adminToken := login(t, srv, "admin", "admin-password")

	resp, raw := doRequest(t, http.MethodPost, srv.URL+"/api/v1/games", adminToken, map[string]string{
		"title": "Quake",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var game models.Game
	require.NoError(t, json.Unmarshal(raw, &game))

	resp, raw = doRequest(t, http.MethodPut, srv.URL+"/api/v1/games/"+game.ID, adminToken, map[string]string{
		"title": "Quake II", "description": "sequel",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = doRequest(t, http.MethodGet, srv.URL+"/api/v1/games", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var catalog []models.Game
	require.NoError(t, json.Unmarshal(raw, &catalog))
	require.Len(t, catalog, 1)
	assert.Equal(t, "Quake II", catalog[0].Title)

	resp, _ = doRequest(t, http.MethodDelete, srv.URL+"/api/v1/games/"+game.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodGet, srv.URL+"/api/v1/games/"+game.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestChangePasswordFlow(t *testing.T) {
	srv := newTestServer(t)
	register(t, srv, "alice", "old-password")
	token := login(t, srv, "alice", "old-password")

	resp, _ := doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/password", token, map[string]string{
		"currentPassword": "wrong", "newPassword": "new-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodPost, srv.URL+"/api/v1/account/password", token, map[string]string{
		"currentPassword": "old-password", "newPassword": "new-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	login(t, srv, "alice", "new-password")
}
