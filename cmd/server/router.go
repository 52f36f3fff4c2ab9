package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/question-api/internal/api"
	apiMiddleware "github.com/phrazzld/question-api/internal/api/middleware"
	"github.com/phrazzld/question-api/internal/api/shared"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	policy := app.statusPolicy()
	paperHandler := api.NewPaperHandler(app.papers, policy, app.logger)
	userHandler := api.NewUserHandler(app.users, app.jwtService, app.passwords, policy, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api/papers", func(r chi.Router) {
		r.Get("/", paperHandler.ListPapers)
		r.Get("/{id}", paperHandler.GetPaper)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", paperHandler.CreatePaper)
			r.Put("/{id}", paperHandler.UpdatePaper)
			r.Delete("/{id}", paperHandler.DeletePaper)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{id}", userHandler.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Put("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
		})
	})

	r.Get("/api-docs", api.NewDocsHandler("Question API", apiVersion, app.logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondMessage(w, r, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondMessage(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
