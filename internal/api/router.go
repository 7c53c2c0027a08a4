package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"truthlens/internal/api/handlers"
	apimiddleware "truthlens/internal/api/middleware"
	"truthlens/internal/config"
	"truthlens/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	limiter  apimiddleware.RateLimitStore
	logger   *logger.Logger
}

// NewRouter creates a new Router instance. limiter may be nil, which
// disables rate limiting.
func NewRouter(cfg config.Config, h *handlers.Handlers, limiter apimiddleware.RateLimitStore, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		limiter:  limiter,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.MethodNotAllowed)

	// Public routes
	router.Group(func(pub chi.Router) {
		pub.Get("/", r.handlers.Health.Info)
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)
		pub.Handle("/metrics", promhttp.Handler())
	})

	timeout := r.config.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limited := func(rt chi.Router) {
		if r.config.RateLimit.Enabled && r.limiter != nil {
			rt.Use(apimiddleware.RateLimiter(r.limiter, r.config.RateLimit, r.logger))
		}
	}

	// Legacy aliases
	router.Group(func(legacy chi.Router) {
		limited(legacy)
		legacy.Use(middleware.Timeout(timeout))
		legacy.Post("/analyze", r.handlers.Analysis.Analyze)
		legacy.Get("/patterns", r.handlers.Analysis.Patterns)
	})

	router.Route("/api/v1", func(v1 chi.Router) {
		limited(v1)

		// the websocket outlives any request timeout
		v1.Get("/stream", r.handlers.Streaming.HandleWebSocket)

		v1.Group(func(api chi.Router) {
			api.Use(middleware.Timeout(timeout))

			api.Post("/analyze", r.handlers.Analysis.Analyze)
			api.Post("/analyze/bulk", r.handlers.Analysis.AnalyzeBulk)
			api.Post("/url/check", r.handlers.Analysis.CheckURL)
			api.Get("/patterns", r.handlers.Analysis.Patterns)
			api.Get("/stats", r.handlers.Analysis.Stats)

			api.Post("/feedback", r.handlers.Feedback.Submit)
			api.Post("/report", r.handlers.Feedback.Report)

			api.Get("/stream/stats", r.handlers.Streaming.GetStats)

			// Catalog administration
			api.Route("/admin", func(admin chi.Router) {
				admin.Use(apimiddleware.AdminAuth(r.config.Admin.Token))

				admin.Post("/patterns", r.handlers.Admin.RegisterPattern)
				admin.Post("/domains", r.handlers.Admin.RegisterDomain)
				admin.Get("/feedback", r.handlers.Admin.RecentFeedback)
			})
		})
	})

	return router
}
