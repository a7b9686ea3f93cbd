package models

import "time"

// EventDetails is an event joined with its venue and performer. Venue and
// performer are optional, so their fields are nil when the event has none.
type EventDetails struct {
	ID            int64      `json:"id"`
	Name          string     `json:"eventName"`
	StartTime     *time.Time `json:"startTime"`
	Status        *string    `json:"eventStatus"`
	VenueName     *string    `json:"venueName"`
	PerformerName *string    `json:"performer_name"`
}
