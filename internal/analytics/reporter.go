package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventReport/internal/lib/logger/sl"
	"eventReport/internal/models"
	"eventReport/internal/storage"

	"golang.org/x/sync/errgroup"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SessionOpener
type SessionOpener interface {
	OpenSession(ctx context.Context, concurrent bool) (storage.Session, error)
}

// Reporter assembles single-event analytics reports.
type Reporter struct {
	log          *slog.Logger
	store        SessionOpener
	now          func() time.Time
	queryTimeout time.Duration
	concurrent   bool
}

type Option func(*Reporter)

// WithNow replaces time.Now as the source of generated_at.
func WithNow(now func() time.Time) Option {
	return func(r *Reporter) {
		r.now = now
	}
}

// WithQueryTimeout bounds the whole report. Zero means no limit.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *Reporter) {
		r.queryTimeout = d
	}
}

// WithConcurrentQueries runs the four queries after event details in
// parallel instead of one after another.
func WithConcurrentQueries(enabled bool) Option {
	return func(r *Reporter) {
		r.concurrent = enabled
	}
}

func New(log *slog.Logger, store SessionOpener, opts ...Option) *Reporter {
	r := &Reporter{
		log:   log,
		store: store,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Generate builds the report for eventID. Event details are fetched first;
// if the event has none no other query runs. Any failure yields an *Error
// and no report.
func (r *Reporter) Generate(ctx context.Context, eventID int64) (*models.Report, error) {
	const op = "analytics.Reporter.Generate"

	log := r.log.With(
		slog.String("op", op),
		slog.Int64("event_id", eventID),
	)

	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	session, err := r.store.OpenSession(ctx, r.concurrent)
	if err != nil {
		log.Error("failed to open database session", sl.Err(err))
		return nil, generationError(eventID, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Warn("failed to close database session", sl.Err(err))
		}
	}()

	log.Debug("fetching event details")

	details, err := session.EventDetails(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			log.Info("event details not found")
			return nil, notFoundError(eventID, err)
		}
		log.Error("failed to fetch event details", sl.Err(err))
		return nil, generationError(eventID, err)
	}

	report := &models.Report{
		ReportType:   models.ReportTypeSingleEvent,
		EventDetails: details,
	}

	steps := []func(context.Context) error{
		func(ctx context.Context) (err error) {
			report.TicketSummary, err = session.TicketSummary(ctx, eventID)
			return wrapStep("ticket summary", err)
		},
		func(ctx context.Context) (err error) {
			report.TicketSalesByType, err = session.TicketSalesByType(ctx, eventID)
			return wrapStep("ticket sales by type", err)
		},
		func(ctx context.Context) (err error) {
			report.AttendeeDemographics, err = session.AttendeeDemographics(ctx, eventID)
			return wrapStep("attendee demographics", err)
		},
		func(ctx context.Context) (err error) {
			report.InEventEngagement, err = session.Engagement(ctx, eventID)
			return wrapStep("engagement", err)
		},
	}

	if r.concurrent {
		err = runConcurrently(ctx, steps)
	} else {
		err = runSequentially(ctx, steps)
	}
	if err != nil {
		log.Error("failed to fetch report components", sl.Err(err))
		return nil, generationError(eventID, err)
	}

	if report.TicketSalesByType == nil {
		report.TicketSalesByType = []models.TicketTypeSales{}
	}
	if report.AttendeeDemographics == nil {
		report.AttendeeDemographics = []models.GenderBreakdown{}
	}

	report.GeneratedAt = r.now().UTC()

	log.Info("report assembled",
		slog.Int("ticket_types", len(report.TicketSalesByType)),
		slog.Int("genders", len(report.AttendeeDemographics)),
	)

	return report, nil
}

func runSequentially(ctx context.Context, steps []func(context.Context) error) error {
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}

	return nil
}

// runConcurrently cancels the remaining steps on the first failure. Each
// step writes a distinct report field.
func runConcurrently(ctx context.Context, steps []func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, step := range steps {
		step := step
		g.Go(func() error {
			return step(gctx)
		})
	}

	return g.Wait()
}

func wrapStep(name string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", name, err)
}
