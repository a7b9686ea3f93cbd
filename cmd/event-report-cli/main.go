package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"eventReport/internal/analytics"
	"eventReport/internal/config"
	"eventReport/internal/lib/logger"
	"eventReport/internal/lib/logger/sl"
	"eventReport/internal/models"
	"eventReport/internal/storage"
	"eventReport/internal/storage/postgres"

	"github.com/goccy/go-json"
)

var errEventNotFound = errors.New("event not found")

type eventResolver interface {
	EventIDByName(ctx context.Context, name string) (int64, error)
}

type reportGenerator interface {
	Generate(ctx context.Context, eventID int64) (*models.Report, error)
}

func main() {
	eventName := flag.String("event", "Aloha", "name of the event to report on")
	flag.Parse()

	cfg := config.MustLoad()

	// stdout carries the report, logs go to stderr.
	log := logger.Setup(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.InitDB(&cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	reporter := analytics.New(log, db,
		analytics.WithQueryTimeout(cfg.Report.QueryTimeout),
		analytics.WithConcurrentQueries(cfg.Report.ConcurrentQueries),
	)

	err = run(ctx, log, *eventName, db, reporter, os.Stdout)

	if cerr := db.Close(); cerr != nil {
		log.Error("failed to close postgres connection", sl.Err(cerr))
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run resolves eventName, builds its report and writes it to out as
// indented JSON.
func run(ctx context.Context, log *slog.Logger, eventName string, resolver eventResolver, generator reportGenerator, out io.Writer) error {
	log = log.With(slog.String("event_name", eventName))

	log.Info("searching for event")

	eventID, err := resolver.EventIDByName(ctx, eventName)
	if err != nil {
		if !errors.Is(err, storage.ErrEventNotFound) {
			log.Error("failed to resolve event", sl.Err(err))
		}
		return fmt.Errorf("could not proceed with report generation: %w: %q", errEventNotFound, eventName)
	}

	log.Info("event found", slog.Int64("event_id", eventID))

	report, err := generator.Generate(ctx, eventID)
	if err != nil {
		var reportErr *analytics.Error
		if errors.As(err, &reportErr) {
			return fmt.Errorf("report generation failed: %s", reportErr.Message)
		}
		return fmt.Errorf("report generation failed: %w", err)
	}

	b, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if _, err = fmt.Fprintln(out, string(b)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.Info("report generation complete")

	return nil
}
