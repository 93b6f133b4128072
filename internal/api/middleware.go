package api

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/kacperh/games-library-be/internal/api/handlers"
	"github.com/kacperh/games-library-be/internal/auth"
)

// authMiddleware extracts the bearer token, validates it and attaches the
// resulting claims to the request context. Core services below this layer
// only ever see already-validated claims.
func authMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				handlers.WriteError(w, auth.ErrNoIdentity)
				return
			}

			claims, err := tokens.Validate(tokenStr)
			if err != nil {
				handlers.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// recoverer is the outermost safety net: panics are logged with a stack
// trace and reported to the client as a generic failure envelope.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("Recovered from panic")
				handlers.WriteJSON(w, http.StatusInternalServerError, handlers.BaseResponse{
					Error:   true,
					Message: "something went wrong",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
