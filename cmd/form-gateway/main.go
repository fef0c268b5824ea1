package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/laporinfra/laporinfra/internal/app"
	"github.com/laporinfra/laporinfra/internal/draft"
	"github.com/laporinfra/laporinfra/internal/gateway"
	"github.com/laporinfra/laporinfra/pkg/config"
	"github.com/laporinfra/laporinfra/pkg/httputil"
	"github.com/laporinfra/laporinfra/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const serviceName = "form-gateway"

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Server.Environment).SetLevel(cfg.LogLevel)
	log.Info().Msg("starting form gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := app.OpenStore(ctx, &cfg.Store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}
	defer store.Close()

	notifier, rmq, err := app.Notifier(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}
	if rmq != nil {
		defer rmq.Close()
	}

	drafts := draft.NewStore(cfg.Draft.TTL, app.GalleryConfig(cfg.Upload), log)

	h := gateway.NewHandler(store, drafts, app.Deps(cfg, store, notifier, log), log)
	if store.DB != nil {
		h.AddHealthCheck("database", store.DB.Health)
	}
	if rmq != nil {
		h.AddHealthCheck("rabbitmq", func(context.Context) map[string]string { return rmq.Health() })
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-Session-ID", "Accept-Language"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Session-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Mount("/", h.Router())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		drafts.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
	}

	log.Info().Msg("server stopped")
}
