package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/contracts"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/org"
	"hrportal/internal/domain/performance"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/transport/http/api"
	audithandler "hrportal/internal/transport/http/handlers/audit"
	authhandler "hrportal/internal/transport/http/handlers/auth"
	contractshandler "hrportal/internal/transport/http/handlers/contracts"
	notificationshandler "hrportal/internal/transport/http/handlers/notifications"
	orghandler "hrportal/internal/transport/http/handlers/org"
	performancehandler "hrportal/internal/transport/http/handlers/performance"
	"hrportal/internal/transport/http/middleware"
)

// NewRouter wires every store, service and handler onto one chi router.
// ping backs /readyz.
func NewRouter(cfg config.Config, pool *pgxpool.Pool, collector *metrics.Collector, ping func(context.Context) error) http.Handler {
	perms := auth.StaticPermissions{}

	orgService := org.NewService(org.NewStore(pool))
	people := orgService.Directory()
	contractService := contracts.NewService(contracts.NewStore(pool), orgService)
	performanceService := performance.NewService(performance.NewStore(pool), people)
	notificationService := notifications.New(notifications.NewStore(pool))
	auditor := audit.New(audit.NewStore(pool))
	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"status": "ok"}, middleware.GetRequestID(r.Context()))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetRequestID(r.Context())
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if ping == nil || ping(ctx) != nil {
			api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database not ready", requestID)
			return
		}
		api.Success(w, map[string]string{"status": "ready"}, requestID)
	})
	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authService)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", authHandler.HandleMe)
			notificationshandler.NewHandler(notificationService).RegisterRoutes(r)

			r.Route("/hr", func(r chi.Router) {
				orghandler.NewHandler(orgService, perms, auditor).RegisterRoutes(r)
				contractshandler.NewHandler(contractService, perms, auditor).RegisterRoutes(r)
				audithandler.NewHandler(auditor, perms).RegisterRoutes(r)
				performanceHandler := &performancehandler.Handler{
					Service:     performanceService,
					Perms:       perms,
					Audit:       auditor,
					Notifier:    notificationService,
					Directory:   people,
					Metrics:     collector,
					Idempotency: middleware.NewIdempotencyStore(pool),
					ReportsDir:  cfg.ReportsDir,
				}
				performanceHandler.RegisterRoutes(r)
			})
		})
	})

	return router
}
