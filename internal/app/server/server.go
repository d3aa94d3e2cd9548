package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrportal/internal/domain/org"
	"hrportal/internal/domain/performance"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/db"
	"hrportal/internal/platform/metrics"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Metrics *metrics.Collector
	Router  http.Handler
}

// New connects to the database, prepares the schema and seed data as
// configured, and builds the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.SeedAdmin(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}
	if cfg.SeedDataFile != "" {
		seedFromFile(ctx, pool, cfg.SeedDataFile)
	}

	collector := metrics.New()
	return &App{
		Config:  cfg,
		DB:      pool,
		Metrics: collector,
		Router:  NewRouter(cfg, pool, collector, pool.Ping),
	}, nil
}

func seedFromFile(ctx context.Context, pool *pgxpool.Pool, path string) {
	file, err := db.LoadSeedFile(path)
	if err != nil {
		slog.Warn("seed data file skipped", "path", path, "err", err)
		return
	}
	orgStore := org.NewStore(pool)
	db.SeedData(ctx, file, org.NewService(orgStore), performance.NewService(performance.NewStore(pool), orgStore))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.Config.Addr, "env", a.Config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
