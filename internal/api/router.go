package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kacperh/games-library-be/internal/api/handlers"
	"github.com/kacperh/games-library-be/internal/auth"
	"github.com/kacperh/games-library-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(allowedOrigin string, tokens *auth.TokenService, accounts services.AccountServiceProvider, games services.GameServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(recoverer)

	// CORS configuration for the frontend client
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accounts)
	gameHandler := handlers.NewGameHandler(games)

	requireAuth := authMiddleware(tokens)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/account", func(r chi.Router) {
			r.Post("/register", accountHandler.Register)
			r.Post("/login", accountHandler.Login)
			r.With(requireAuth).Post("/password", accountHandler.ChangePassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			// Global catalog; mutations are admin-only, enforced in the service
			r.Route("/games", func(r chi.Router) {
				r.Get("/", gameHandler.ListCatalog)
				r.Post("/", gameHandler.AddToCatalog)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", gameHandler.Get)
					r.Put("/", gameHandler.Update)
					r.Delete("/", gameHandler.RemoveFromCatalog)
				})
			})

			// The authenticated user's own library
			r.Route("/me/games", func(r chi.Router) {
				r.Get("/", gameHandler.ListMine)
				r.Post("/{id}", gameHandler.AddToLibrary)
				r.Delete("/{id}", gameHandler.RemoveFromLibrary)
			})
		})
	})

	return r
}
