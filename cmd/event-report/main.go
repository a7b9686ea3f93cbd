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

	"eventReport/internal/analytics"
	"eventReport/internal/config"
	"eventReport/internal/http-server/handlers/report/getEventReport"
	"eventReport/internal/http-server/middleware/mwlogger"
	"eventReport/internal/lib/logger"
	"eventReport/internal/lib/logger/sl"
	"eventReport/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.Setup(cfg.Env, os.Stdout)

	log.Info("Starting event report service", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	reporter := analytics.New(log, storage,
		analytics.WithQueryTimeout(cfg.Report.QueryTimeout),
		analytics.WithConcurrentQueries(cfg.Report.ConcurrentQueries),
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)

	router.Get("/event_report/{event_name}", getEventReport.New(log, storage, reporter))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: writeTimeout(cfg),
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = storage.Close(); err != nil {
		log.Error("failed to close postgres connection", sl.Err(err))
	}

	log.Info("postgres connection closed")
}

// writeTimeout leaves room for a report that uses its whole query budget.
func writeTimeout(cfg *config.Config) time.Duration {
	if cfg.Report.QueryTimeout > cfg.HTTPServer.Timeout {
		return cfg.Report.QueryTimeout + time.Second
	}

	return cfg.HTTPServer.Timeout
}
