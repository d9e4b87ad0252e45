/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/onboarding/employees/*   Per-employee onboarding lifecycle
  /api/onboarding/workflows/*   Workflow template admin
  /api/employees/*              Employee seam (demo/dev)
  /api/policies                 Policy seam (demo/dev)

SECURITY NOTE:
  No authentication middleware currently. Tenancy comes from the
  X-Tenant-ID header, which the auth layer would set in production.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Tenant-ID"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/onboarding", func(r chi.Router) {
			// HR dashboard listing
			r.Get("/employees", h.ListOnboarding)

			// Per-employee onboarding lifecycle
			r.Route("/employees/{id}", func(r chi.Router) {
				r.Post("/start", h.StartOnboarding)
				r.Get("/progress", h.GetProgress)
				r.Get("/gates", h.GetHardGates)
				r.Post("/refresh-documents", h.RefreshDocuments)
				r.Post("/activate", h.ActivateEmployee)
				r.Post("/profile-completion", h.CalculateProfileCompletion)
				r.Put("/file-complete", h.MarkFileComplete)

				r.Route("/documents", func(r chi.Router) {
					r.Get("/", h.ListDocuments)
					r.Post("/{docID}/sign", h.SignDocument)
					r.Post("/{docID}/upload", h.UploadDocument)
					r.Put("/{docID}/verify", h.VerifyDocument)
					r.Put("/{docID}/reject", h.RejectDocument)
				})
			})

			// Workflow template admin
			r.Route("/workflows", func(r chi.Router) {
				r.Get("/", h.ListWorkflows)
				r.Post("/", h.CreateWorkflow)
				r.Get("/{id}", h.GetWorkflow)
				r.Put("/{id}", h.UpdateWorkflow)
			})
		})

		// Demo/dev seams for collaborator data
		r.Route("/employees", func(r chi.Router) {
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
		})
		r.Post("/policies", h.CreatePolicy)
	})

	return r
}
