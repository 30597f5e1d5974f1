package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Rrens/llm-query-gateway/internal/api/handler"
	customMiddleware "github.com/Rrens/llm-query-gateway/internal/api/middleware"
	"github.com/Rrens/llm-query-gateway/internal/api/response"
	"github.com/Rrens/llm-query-gateway/internal/config"
	"github.com/Rrens/llm-query-gateway/internal/domain"
	"github.com/Rrens/llm-query-gateway/internal/llm"
	"github.com/Rrens/llm-query-gateway/internal/security"
	"github.com/Rrens/llm-query-gateway/internal/service"
)

// Deps are the backing components the router wires into its handlers
type Deps struct {
	Users     domain.UserRepository
	Responses domain.QueryResponseRepository
	Completer llm.Completer
	DB        handler.Pinger
	// RateLimiter is optional; protected routes are unlimited when nil
	RateLimiter customMiddleware.Limiter
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Server.MiddlewareTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	hasher := security.NewPasswordHasher(0)

	// Initialize services
	authService := service.NewAuthService(deps.Users, jwtManager, hasher)
	queryService := service.NewQueryService(deps.Responses, deps.Completer, cfg.LLM)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	queryHandler := handler.NewQueryHandler(queryService)

	authMiddleware := customMiddleware.NewAuthMiddleware(authService)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Detail(w, http.StatusNotFound, "Not Found")
	})

	// Public routes
	r.Get("/health", handler.HealthCheck)
	if deps.DB != nil {
		r.Get("/ready", handler.ReadyCheck(deps.DB))
	}
	r.Post("/login", authHandler.Login)
	r.Post("/auth/login", authHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		if deps.RateLimiter != nil {
			r.Use(customMiddleware.NewRateLimitMiddleware(deps.RateLimiter).Limit)
		}

		r.Get("/auth/me", authHandler.Me)

		r.Route("/query", func(r chi.Router) {
			r.Post("/", queryHandler.Submit)
			r.Get("/responses", queryHandler.List)
			r.Get("/responses/{responseID}", queryHandler.Get)
		})

		r.Route("/db/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Get("/{userID}", userHandler.Get)
		})
	})

	return r
}
