package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/folio-hub/folio-server/internal/api/auth"
	"github.com/folio-hub/folio-server/internal/api/contact"
	"github.com/folio-hub/folio-server/internal/api/middleware"
	"github.com/folio-hub/folio-server/internal/api/projects"
)

// setupRouter creates and configures the chi router with all routes.
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Create JWT service
	jwtService := auth.NewJWTService(s.config.JWTSecret, s.config.AccessTokenTTL)

	// Create lockout tracker
	lockoutTracker := auth.NewLockoutTracker(s.config.LockoutThreshold, s.config.LockoutDuration)

	// Rate limiter for public write endpoints
	ipLimiter := middleware.NewRateLimiter(s.config.RateLimitPerIP)

	// Global middleware
	r.Use(middleware.RequestLogger(s.config.Verbose))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.PrometheusMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Route("/auth", func(r chi.Router) {
			authHandler := auth.NewHandler(
				s.storage,
				jwtService,
				lockoutTracker,
				s.config.RefreshTokenTTL,
			)

			// Public routes with IP rate limiting
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimitByIP(ipLimiter))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
				r.Post("/refresh", authHandler.Refresh)
			})

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(jwtService))
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// Project routes
		r.Route("/projects", func(r chi.Router) {
			projectHandler := projects.NewHandler(s.storage)

			// Public reads
			r.Get("/", projectHandler.List)
			r.Get("/featured", projectHandler.Featured)
			r.Get("/{id}", projectHandler.GetByID)

			// Admin-only mutations
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(jwtService))
				r.Use(middleware.RequireAdmin)
				r.Post("/", projectHandler.Create)
				r.Put("/{id}", projectHandler.Update)
				r.Delete("/{id}", projectHandler.Delete)
			})
		})

		// Contact routes
		r.Route("/contact", func(r chi.Router) {
			contactHandler := contact.NewHandler(s.storage, s.dispatcher)

			// Public submission with IP rate limiting
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimitByIP(ipLimiter))
				r.Post("/", contactHandler.Send)
			})

			// Admin-only inbox
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(jwtService))
				r.Use(middleware.RequireAdmin)
				r.Get("/", contactHandler.List)
				r.Put("/{id}/status", contactHandler.UpdateStatus)
			})
		})
	})

	// Health checks (public, no rate limit)
	r.Get("/health", s.healthHandler.Health)
	r.Get("/health/ready", s.healthHandler.Ready)

	// Unknown API paths get the shared error envelope
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		JSONError(w, ErrNotFound)
	})

	return r
}
