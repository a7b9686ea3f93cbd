package storage

import (
	"context"
	"errors"

	"eventReport/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

// Session is an open read cursor scoped to one report. Every metric query
// takes the event id explicitly and callers must pass the same id to all of
// them. Close releases the underlying connection.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Session
type Session interface {
	EventDetails(ctx context.Context, eventID int64) (*models.EventDetails, error)
	TicketSummary(ctx context.Context, eventID int64) (*models.TicketSummary, error)
	TicketSalesByType(ctx context.Context, eventID int64) ([]models.TicketTypeSales, error)
	AttendeeDemographics(ctx context.Context, eventID int64) ([]models.GenderBreakdown, error)
	Engagement(ctx context.Context, eventID int64) (*models.EngagementStats, error)
	Close() error
}
