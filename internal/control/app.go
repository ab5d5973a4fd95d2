// Package control wires the careerd application together and manages its
// lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/tamkeenai/careerd/internal/audit"
	pgaudit "github.com/tamkeenai/careerd/internal/audit/postgres"
	"github.com/tamkeenai/careerd/internal/core/config"
	"github.com/tamkeenai/careerd/internal/fixtures"
	"github.com/tamkeenai/careerd/internal/gateway"
	"github.com/tamkeenai/careerd/internal/notify"
	"github.com/tamkeenai/careerd/internal/server"
	"github.com/tamkeenai/careerd/internal/session"
	memorystore "github.com/tamkeenai/careerd/internal/session/memory"
	redisstore "github.com/tamkeenai/careerd/internal/session/redis"
	"github.com/tamkeenai/careerd/internal/upstream"
)

// Config holds the application configuration.
type Config struct {
	Port           int
	Upstream       upstream.Config
	FixtureDir     string
	Cooldown       time.Duration
	WarnOnFallback bool
	Redis          redisstore.Config
	Database       pgaudit.Config
}

// FromAppConfig maps the loaded YAML config onto the wiring config.
func FromAppConfig(cfg *config.AppConfig) Config {
	return Config{
		Port:           cfg.Server.Port,
		Upstream:       cfg.Upstream,
		FixtureDir:     cfg.Fixtures.Dir,
		Cooldown:       time.Duration(cfg.Fallback.CooldownSeconds) * time.Second,
		WarnOnFallback: cfg.Fallback.WarnOnFallback,
		Redis:          cfg.Redis,
		Database:       cfg.Database,
	}
}

// App is the main application struct that manages the server lifecycle.
type App struct {
	server     *server.Server
	db         *pgaudit.DB
	redisStore *redisstore.Store
	log        *slog.Logger
}

// NewApp creates a new App instance with all dependencies initialized.
func NewApp(cfg Config) (*App, error) {
	log := slog.Default()

	// 1. Session store
	var store session.Store
	var rs *redisstore.Store
	if cfg.Redis.URL != "" {
		var err error
		rs, err = redisstore.NewStore(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis store: %w", err)
		}
		store = rs
		log.Info("Using Redis session store")
	} else {
		store = memorystore.NewStore()
		log.Info("Using memory session store")
	}

	// 2. Audit log
	var recorder audit.Recorder = audit.Noop{}
	var recent server.RecentLister
	var db *pgaudit.DB
	if cfg.Database.URL != "" {
		var err error
		db, err = pgaudit.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		rec := pgaudit.NewRecorder(db)
		recorder = rec
		recent = rec
		log.Info("Using PostgreSQL audit log")
	}

	// 3. Fixture catalog
	catalog, err := fixtures.Load(cfg.FixtureDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}
	log.Info("Loaded fixture catalog", "resources", catalog.Keys())

	// 4. Gateway
	gw := gateway.New(gateway.Config{
		Catalog:  catalog,
		Store:    store,
		Notifier: notify.NewSlogNotifier(log),
		Recorder: recorder,
		Cooldown: cfg.Cooldown,
		Logger:   log,
	})

	// 5. Upstream client and HTTP server
	up := upstream.NewClient(cfg.Upstream)
	srv := server.New(cfg.Port, gw, up, recent, cfg.WarnOnFallback)

	return &App{
		server:     srv,
		db:         db,
		redisStore: rs,
		log:        log,
	}, nil
}

// Start starts the HTTP server.
func (a *App) Start(ctx context.Context) error {
	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("API server failed", "error", err)
		}
	}()
	a.log.Info("careerd started")
	return nil
}

// Stop shuts the application down gracefully.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping careerd...")

	if a.redisStore != nil {
		if err := a.redisStore.Close(); err != nil {
			a.log.Warn("Failed to close Redis", "error", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn("Failed to close database", "error", err)
		}
	}

	return a.server.Stop(ctx)
}
