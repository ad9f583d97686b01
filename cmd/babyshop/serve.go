package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/health"
	"github.com/Ramsey-B/babyshop/pkg/metrics"
	"github.com/Ramsey-B/babyshop/pkg/middleware"
	"github.com/Ramsey-B/babyshop/pkg/server"
	"github.com/Ramsey-B/babyshop/pkg/startup"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

const dbStatsInterval = 15 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	logger := a.logger

	var (
		db         database.DB
		publisher  events.Publisher = events.NoopPublisher{}
		shutdownTP func(context.Context) error
		httpServer *http.Server
		checker    *health.Checker
		stopStats  = make(chan struct{})
	)

	s := startup.NewStartup(logger, cfg.StartupMaxAttempts)

	s.AddDependency(&startup.Func{
		Name: "tracing",
		OnStart: func(ctx context.Context) error {
			var err error
			shutdownTP, err = tracing.Setup(ctx, cfg.Tracing(), logger)
			return err
		},
		OnStop: func(ctx context.Context) error {
			if shutdownTP == nil {
				return nil
			}
			return shutdownTP(ctx)
		},
	})

	s.AddDependency(&startup.Func{
		Name: "database",
		OnStart: func(ctx context.Context) error {
			var err error
			db, err = database.Open(ctx, cfg.Database(), logger)
			if err != nil {
				return err
			}
			go reportDBStats(db, stopStats)
			return nil
		},
		OnStop: func(context.Context) error {
			close(stopStats)
			return db.Close()
		},
	})

	s.AddDependency(&startup.Func{
		Name:     "migrations",
		Requires: []string{"database"},
		OnStart: func(context.Context) error {
			return database.NewMigrationService(logger, cfg.Migration()).Run(db)
		},
	})

	if cfg.KafkaEnabled {
		s.AddDependency(&startup.Func{
			Name: "events",
			OnStart: func(context.Context) error {
				publisher = events.NewProducer(cfg.Producer(), logger)
				return nil
			},
			OnStop: func(context.Context) error {
				return publisher.Close()
			},
		})
	}

	serverRequires := []string{"tracing", "migrations"}
	if cfg.KafkaEnabled {
		serverRequires = append(serverRequires, "events")
	}

	s.AddDependency(&startup.Func{
		Name:     "server",
		Requires: serverRequires,
		OnStart: func(ctx context.Context) error {
			opts := server.Options{
				ServiceName:  cfg.AppName,
				AllowOrigins: cfg.AllowOrigins,
				Publisher:    publisher,
				Health:       health.NewChecker(db, cfg.Version),
				Logger:       logger,
				Auth:         server.AuthBasic,
			}
			if cfg.AuthEnabled {
				verifier, err := middleware.NewOIDCVerifier(ctx, cfg.AuthIssuerURL, cfg.AuthClientID)
				if err != nil {
					return err
				}
				opts.Auth = server.AuthBearer
				opts.Verifier = verifier
			}
			checker = opts.Health

			e := server.New(opts, server.NewRepositories(db, logger))
			httpServer = newHTTPServer(a, e)

			go func() {
				logger.Infof("Listening on %s", httpServer.Addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.WithError(err).Error("http server stopped")
				}
			}()
			checker.SetReady(true)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if httpServer == nil {
				return nil
			}
			checker.SetReady(false)
			return httpServer.Shutdown(ctx)
		},
	})

	if err := s.Start(ctx); err != nil {
		_ = s.Stop(context.Background())
		return err
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return s.Stop(stopCtx)
}

func newHTTPServer(a *app, e *echo.Echo) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Port),
		Handler:      e,
		ReadTimeout:  time.Duration(a.cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(a.cfg.HttpServerIdleTimeoutSeconds) * time.Second,
	}
}

func reportDBStats(db database.DB, stop <-chan struct{}) {
	ticker := time.NewTicker(dbStatsInterval)
	defer ticker.Stop()

	for {
		metrics.RecordDBOpenConnections(db.Stats().OpenConnections)
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}
