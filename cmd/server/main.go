package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"culinary-be/internal/api"
	"culinary-be/internal/config"
	"culinary-be/internal/db"
	"culinary-be/internal/item"
	"culinary-be/internal/logger"
	"culinary-be/internal/metrics"
	"culinary-be/internal/middleware"
	"culinary-be/internal/notify"
	"culinary-be/internal/order"
	"culinary-be/internal/session"
	"culinary-be/internal/stats"
	"culinary-be/internal/supplier"
	"culinary-be/internal/workflow"

	"go.uber.org/zap"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
	recentLimit     = 50
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// app holds the handler and the background workers it depends on.
type app struct {
	handler  http.Handler
	sessions *session.Manager
	limiter  *middleware.RateLimiter
	hub      *notify.Hub
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	if cfg.DBDriver == config.DriverSQLite {
		if err := db.MigrateUp(database); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, database)
	defer a.hub.Close()
	go a.sessions.Run(ctx, sweepInterval)
	go a.limiter.Run(ctx)

	logger.L().Info("server starting",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
		zap.String("db_driver", cfg.DBDriver),
	)
	return startServerFunc(ctx, ":"+cfg.AppPort, a.handler)
}

func newApp(cfg *config.Config, database *sql.DB) *app {
	m := metrics.New()
	hub := notify.NewHub(cfg.CORSOrigin)

	stores := workflow.Stores{
		Items:     item.NewService(item.NewRepository(database)),
		Suppliers: supplier.NewService(supplier.NewRepository(database)),
		Orders:    order.NewService(order.NewRepository(database)),
		Stats:     stats.NewService(stats.NewRepository(database), m.ObserveStats),
	}

	sessions := session.NewManager(cfg.SessionTTL, func(id string) *session.Session {
		rec := notify.NewRecorder(recentLimit)
		wf := workflow.New(stores, notify.Fanout{rec, hub.For(id), m.Notifier()})
		return &session.Session{ID: id, Workflow: wf, Notifications: rec}
	}, session.WithObserver(m.SetSessions))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	mux := api.NewRouter(api.Config{
		Sessions:      sessions,
		Notifications: hub,
		Metrics:       m.Handler(),
		Health:        database.PingContext,
	})

	return &app{
		handler:  setupRouter(mux, cfg.CORSOrigin, limiter, m),
		sessions: sessions,
		limiter:  limiter,
		hub:      hub,
	}
}

// setupRouter wraps the mux. Logging sits directly outside the limiter so the
// matched route pattern is still visible to it.
func setupRouter(mux *http.ServeMux, corsOrigin string, limiter *middleware.RateLimiter, m *metrics.Metrics) http.Handler {
	return middleware.Chain(mux,
		middleware.CORS(corsOrigin),
		logger.RequestIDMiddleware,
		middleware.Logging(m),
		limiter.Middleware,
	)
}

func startServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
