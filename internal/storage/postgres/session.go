package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventReport/internal/models"
	"eventReport/internal/storage"
)

// querier is satisfied by both *sql.Conn and *sql.DB.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session runs the report metric queries. Payment status is always compared
// as UPPER("paymentStatus"::text) = 'PAID' so that paid, Paid and PAID count
// the same and enum-typed columns compare correctly.
type Session struct {
	q     querier
	close func() error
}

func (s *Session) Close() error {
	return s.close()
}

func (s *Session) EventDetails(ctx context.Context, eventID int64) (*models.EventDetails, error) {
	const op = "storage.postgres.EventDetails"

	query := `
		SELECT
			e.id,
			e."eventName",
			e."startTime",
			e."eventStatus"::text,
			v."venueName",
			u.name
		FROM events e
		LEFT JOIN venues v ON e."venueId" = v.id
		LEFT JOIN performers p ON e."performerId" = p.id
		LEFT JOIN users u ON p."userId" = u.id
		WHERE e.id = $1`

	var (
		details       models.EventDetails
		startTime     sql.NullTime
		status        sql.NullString
		venueName     sql.NullString
		performerName sql.NullString
	)

	err := s.q.QueryRowContext(ctx, query, eventID).Scan(
		&details.ID,
		&details.Name,
		&startTime,
		&status,
		&venueName,
		&performerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get event details: %w", op, err)
	}

	if startTime.Valid {
		details.StartTime = &startTime.Time
	}
	if status.Valid {
		details.Status = &status.String
	}
	if venueName.Valid {
		details.VenueName = &venueName.String
	}
	if performerName.Valid {
		details.PerformerName = &performerName.String
	}

	return &details, nil
}

func (s *Session) TicketSummary(ctx context.Context, eventID int64) (*models.TicketSummary, error) {
	const op = "storage.postgres.TicketSummary"

	query := `
		SELECT
			(SELECT COALESCE(SUM("totalTickets"), 0) FROM event_tickets WHERE "eventId" = $1),
			(SELECT COUNT(*) FROM tickets WHERE "eventId" = $1 AND UPPER("paymentStatus"::text) = 'PAID'),
			(SELECT COALESCE(SUM(price), 0) FROM tickets WHERE "eventId" = $1 AND UPPER("paymentStatus"::text) = 'PAID'),
			(SELECT COUNT(*) FROM attendees WHERE "eventId" = $1)`

	var summary models.TicketSummary
	err := s.q.QueryRowContext(ctx, query, eventID).Scan(
		&summary.TicketsAvailable,
		&summary.TicketsSold,
		&summary.TotalRevenue,
		&summary.TotalCheckIns,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get ticket summary: %w", op, err)
	}

	return &summary, nil
}

// TicketSalesByType never returns a nil slice so that an event without sales
// serialises as an empty array.
func (s *Session) TicketSalesByType(ctx context.Context, eventID int64) ([]models.TicketTypeSales, error) {
	const op = "storage.postgres.TicketSalesByType"

	query := `
		SELECT
			"ticketType",
			COUNT(id) AS sold_count,
			COALESCE(SUM(price), 0) AS revenue
		FROM tickets
		WHERE "eventId" = $1 AND UPPER("paymentStatus"::text) = 'PAID'
		GROUP BY "ticketType"
		ORDER BY sold_count DESC`

	rows, err := s.q.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get ticket sales by type: %w", op, err)
	}
	defer rows.Close()

	sales := make([]models.TicketTypeSales, 0)
	for rows.Next() {
		var (
			row        models.TicketTypeSales
			ticketType sql.NullString
		)
		if err = rows.Scan(&ticketType, &row.SoldCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("%s: failed to scan ticket type row: %w", op, err)
		}
		if ticketType.Valid {
			row.TicketType = &ticketType.String
		}
		sales = append(sales, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating ticket types: %w", op, err)
	}

	return sales, nil
}

func (s *Session) AttendeeDemographics(ctx context.Context, eventID int64) ([]models.GenderBreakdown, error) {
	const op = "storage.postgres.AttendeeDemographics"

	query := `
		SELECT
			u.gender::text,
			COUNT(DISTINCT u.id) AS unique_ticket_buyers
		FROM tickets t
		JOIN users u ON t."userId" = u.id
		WHERE t."eventId" = $1
			AND UPPER(t."paymentStatus"::text) = 'PAID'
			AND u.gender IS NOT NULL
		GROUP BY u.gender`

	rows, err := s.q.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get attendee demographics: %w", op, err)
	}
	defer rows.Close()

	demographics := make([]models.GenderBreakdown, 0)
	for rows.Next() {
		var row models.GenderBreakdown
		if err = rows.Scan(&row.Gender, &row.UniqueTicketBuyers); err != nil {
			return nil, fmt.Errorf("%s: failed to scan demographics row: %w", op, err)
		}
		demographics = append(demographics, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating demographics: %w", op, err)
	}

	return demographics, nil
}

func (s *Session) Engagement(ctx context.Context, eventID int64) (*models.EngagementStats, error) {
	const op = "storage.postgres.Engagement"

	query := `
		SELECT
			(SELECT COUNT(*) FROM song_requests WHERE "eventId" = $1),
			(SELECT COALESCE(SUM("tipAmount"), 0) FROM performer_tips WHERE "eventId" = $1)`

	var stats models.EngagementStats
	err := s.q.QueryRowContext(ctx, query, eventID).Scan(
		&stats.TotalSongRequests,
		&stats.TotalTipsFromEvent,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get engagement stats: %w", op, err)
	}

	return &stats, nil
}
