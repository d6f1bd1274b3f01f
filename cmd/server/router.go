package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/userhub-io/userhub/internal/api"
	apiMiddleware "github.com/userhub-io/userhub/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	interestHandler := api.NewInterestHandler(app.interestService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", authHandler.Register)
		r.Post("/users/login", authHandler.Login)
		r.Get("/activate/{token}", authHandler.Activate)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/users/logout", authHandler.Logout)
			r.Post("/users/refresh", authHandler.Refresh)
			r.Post("/users/change_password", authHandler.ChangePassword)
			r.Put("/users/update_profile", userHandler.UpdateProfile)

			r.Get("/users/showinterest", interestHandler.ShowInterests)
			r.Post("/users/update_interests", interestHandler.UpdateInterests)

			r.Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.Get)
			r.Delete("/users/{id}", userHandler.Delete)

			r.Get("/interests", interestHandler.List)
			r.Post("/interests", interestHandler.Create)
			r.Get("/interests/{id}", interestHandler.Get)
			r.Put("/interests/{id}", interestHandler.Update)
			r.Delete("/interests/{id}", interestHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
