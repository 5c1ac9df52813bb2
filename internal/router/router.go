// Package router sets up all HTTP routes and middleware chains for the
// media library API. Routes are grouped by the permission they require.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"interiorlib/internal/handlers"
	"interiorlib/internal/middleware"
	"interiorlib/internal/models"
	"interiorlib/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, auth *handlers.Auth, categories *handlers.Categories,
	media *handlers.Media, jobs *handlers.Jobs, favorites *handlers.Favorites,
	users *handlers.Users) chi.Router {

	r := chi.NewRouter()

	// Global middleware — applied to every request. LoadSession precedes
	// Logger so request logs carry the acting user.
	r.Use(middleware.Recoverer)
	r.Use(middleware.LoadSession(sessionStore))
	r.Use(middleware.Logger)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Login is rate-limited to slow down credential stuffing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/auth/login", auth.Login)
		})
		r.Post("/auth/logout", auth.Logout)

		// Everything below requires a session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/auth/me", auth.Me)
			r.Get("/tags", categories.Tags)

			// Category browsing is open to every role.
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categories.List)
				r.Get("/{id}", categories.Get)
				r.Get("/{id}/sub/{subID}/media", media.ListBySubCategory)

				// Mutations need category management rights.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(func(p models.Permissions) bool {
						return p.CanManageCategories
					}))
					r.Post("/", categories.Create)
					r.Put("/{id}", categories.Update)
					r.Post("/force-sync", categories.ForceSync)
				})
			})

			// Media
			r.Route("/media", func(r chi.Router) {
				r.Get("/", media.List)

				r.With(middleware.RequirePermission(func(p models.Permissions) bool {
					return p.CanUpload
				})).Post("/upload", media.Upload)

				r.With(middleware.RequirePermission(func(p models.Permissions) bool {
					return p.CanDelete
				})).Delete("/{id}", media.Delete)
			})

			// Maintenance jobs — admin only.
			r.Route("/jobs", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/recount", jobs.Recount)
				r.Post("/recover", jobs.Recover)
			})

			// Favorites — every role can favorite.
			r.Route("/favorites", func(r chi.Router) {
				r.Use(middleware.RequirePermission(func(p models.Permissions) bool {
					return p.CanFavorite
				}))
				r.Get("/", favorites.List)
				r.Post("/", favorites.Add)
				r.Delete("/{mediaID}", favorites.Remove)
			})

			// User management — admin only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", users.List)
				r.Post("/", users.Create)
				r.Put("/{id}/role", users.UpdateRole)
				r.Delete("/{id}", users.Delete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
