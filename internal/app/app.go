// Package app builds the application context once at process start and
// tears it down at process stop.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pharmacy_inventory/internal/config"
	"pharmacy_inventory/internal/handlers"
	"pharmacy_inventory/internal/logger"
	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/repository"
	"pharmacy_inventory/internal/repository/db"
	"pharmacy_inventory/internal/server"
	"pharmacy_inventory/internal/service"
)

const shutdownTimeout = 10 * time.Second

// App owns every long-lived dependency of the process.
type App struct {
	Config   config.Config
	Log      *logger.Logger
	DB       *sql.DB
	Services *service.Service

	handler *handlers.Handler
	server  *server.Server
}

// New opens the database and wires repositories, services and the HTTP layer.
// log may be nil, in which case one is built from cfg.LogLevel.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		l, err := logger.New(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		log = l
	}

	generated, err := cfg.EnsureSecret()
	if err != nil {
		return nil, err
	}
	if generated {
		log.Warnw("session_secret_generated", "hint", "set session.secret to keep sessions across restarts")
	}

	conn, err := db.InitDB(ctx, cfg.DB.Path, log)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		SessionSecret: []byte(cfg.Session.Secret),
		SessionTTL:    cfg.Session.TTL,
	})
	h := handlers.NewHandler(services, log, handlers.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
		MaxAge: cfg.Session.TTL,
	})

	return &App{
		Config:   cfg,
		Log:      log,
		DB:       conn,
		Services: services,
		handler:  h,
		server: server.New(server.Options{
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
		}),
	}, nil
}

// Prepare purges expired sessions and seeds the store when enabled.
func (a *App) Prepare(ctx context.Context) error {
	purged, err := a.Services.Purge(ctx)
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	if purged > 0 {
		a.Log.Infow("sessions_purged", "count", purged)
	}

	if !a.Config.Seed.Enabled {
		return nil
	}
	res, err := a.Services.Seed(ctx, models.DateOf(time.Now()))
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if res.AdminID != 0 {
		a.Log.Infow("store_seeded", "admin_id", res.AdminID, "medicines", res.Medicines)
	}
	return nil
}

// Serve runs the HTTP server on ln until ctx is cancelled, then shuts it
// down gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Serve(ln, a.handler.InitRoutes())
	}()
	a.Log.Infow("server_started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Infow("shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}

// Run prepares the store, listens on the configured port and serves until
// SIGINT or SIGTERM.
func (a *App) Run(ctx context.Context) error {
	if err := a.Prepare(ctx); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", server.Addr(a.Config.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx, ln)
}

// Close releases the database and flushes the logger.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close sqlite: %w", err))
		}
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return errors.Join(errs...)
}
