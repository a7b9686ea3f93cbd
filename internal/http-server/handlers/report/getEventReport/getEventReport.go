package getEventReport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"eventReport/internal/analytics"
	"eventReport/internal/lib/api/response"
	"eventReport/internal/lib/logger/sl"
	"eventReport/internal/models"
	"eventReport/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ReportResponse struct {
	response.Response
	Data *models.Report `json:"data,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventResolver
type EventResolver interface {
	EventIDByName(ctx context.Context, name string) (int64, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ReportGenerator
type ReportGenerator interface {
	Generate(ctx context.Context, eventID int64) (*models.Report, error)
}

func New(log *slog.Logger, resolver EventResolver, generator ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.getEventReport.New"

		log := log.With(
			slog.String("op", op),
		)

		eventName := chi.URLParam(r, "event_name")
		if eventName == "" {
			log.Error("event name is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event name is required"))
			return
		}

		// chi routes on RawPath only when it is set (e.g. for %2F); otherwise
		// the parameter is already decoded and must not be decoded again.
		if r.URL.RawPath != "" {
			if decoded, err := url.PathUnescape(eventName); err == nil {
				eventName = decoded
			}
		}

		log = log.With(slog.String("event_name", eventName))

		eventID, err := resolver.EventIDByName(r.Context(), eventName)
		if err != nil {
			// A failed lookup and a missing event both leave us without an id.
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Info("event not found")
			} else {
				log.Error("failed to resolve event", sl.Err(err))
			}

			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(fmt.Sprintf("Event '%s' not found.", eventName)))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		report, err := generator.Generate(r.Context(), eventID)
		if err != nil {
			log.Error("report generation failed", sl.Err(err))

			msg := analytics.MsgGenerationFailed
			var reportErr *analytics.Error
			if errors.As(err, &reportErr) {
				msg = reportErr.Message
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("event report generated")

		responseOK(w, r, report)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, report *models.Report) {
	render.JSON(w, r, ReportResponse{
		Response: response.OK(),
		Data:     report,
	})
}
