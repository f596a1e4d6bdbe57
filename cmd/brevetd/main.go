package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	api "github.com/mind-engage/brevet-cc/internal/api/http"
	"github.com/mind-engage/brevet-cc/internal/app"
	"github.com/mind-engage/brevet-cc/internal/config"
	"github.com/mind-engage/brevet-cc/internal/grading"
	"github.com/mind-engage/brevet-cc/internal/logging"
	"github.com/mind-engage/brevet-cc/internal/metrics"
)

func main() {
	envErr := godotenv.Load()
	cfg := config.FromEnv()
	log := logging.Init(cfg.LogJSON, logging.ParseLevel(cfg.LogLevel))
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn("could not read .env", "err", envErr)
	}

	var (
		rec grading.Recorder
		obs api.GradeObserver
		m   *metrics.Metrics
	)
	if cfg.EnableMetrics {
		m = metrics.NewMetrics()
		rec, obs = m, m
	}
	a := app.New(cfg, log, rec)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	grader := &api.Grading{
		Vocab:          a.Vocab,
		Aggregator:     a.Aggregator,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Observer:       obs,
		Log:            log,
	}
	r.Route("/api", func(ar chi.Router) {
		api.MountGrading(ar, grader)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	if m != nil {
		r.Handle("/metrics", promhttp.Handler())
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	go gracefulShutdown(srv, log, done)

	log.Info("listening", "addr", cfg.HTTPAddr, "tolerance", cfg.ColorTolerance, "dpi", cfg.RenderDPI, "metrics", cfg.EnableMetrics)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server", "err", err)
		os.Exit(1)
	}
	<-done
	log.Info("server exiting")
}

func gracefulShutdown(srv *http.Server, log *slog.Logger, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "err", err)
	}
	close(done)
}
