package models

import "time"

const ReportTypeSingleEvent = "Single-Event Analytics"

// Report is the single-event analytics report. It is built fresh for every
// request and never stored.
type Report struct {
	GeneratedAt          time.Time         `json:"generated_at"`
	ReportType           string            `json:"report_type"`
	EventDetails         *EventDetails     `json:"event_details"`
	TicketSummary        *TicketSummary    `json:"ticket_summary"`
	TicketSalesByType    []TicketTypeSales `json:"ticket_sales_by_type"`
	AttendeeDemographics []GenderBreakdown `json:"attendee_demographics"`
	InEventEngagement    *EngagementStats  `json:"in_event_engagement"`
}

type TicketSummary struct {
	TicketsAvailable int64   `json:"tickets_available"`
	TicketsSold      int64   `json:"tickets_sold"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalCheckIns    int64   `json:"total_check_ins"`
}

// TicketTypeSales is one row of the paid ticket breakdown by ticket type.
// TicketType is nil for tickets sold without a type.
type TicketTypeSales struct {
	TicketType *string `json:"ticketType"`
	SoldCount  int64   `json:"sold_count"`
	Revenue    float64 `json:"revenue"`
}

type GenderBreakdown struct {
	Gender             string `json:"gender"`
	UniqueTicketBuyers int64  `json:"unique_ticket_buyers"`
}

type EngagementStats struct {
	TotalSongRequests  int64   `json:"total_song_requests"`
	TotalTipsFromEvent float64 `json:"total_tips_from_event"`
}
