package analytics

import (
	"errors"
	"fmt"

	"eventReport/internal/storage"
)

// MsgGenerationFailed is the client-facing message for any failure other
// than a missing event.
const MsgGenerationFailed = "failed to generate event report"

// Error is the only error Generate returns. Message is safe to show to
// clients; Err keeps the underlying cause for logs.
type Error struct {
	EventID int64
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports whether the event had no details row.
func (e *Error) NotFound() bool {
	return errors.Is(e.Err, storage.ErrEventNotFound)
}

func notFoundError(eventID int64, err error) *Error {
	return &Error{
		EventID: eventID,
		Message: fmt.Sprintf("Event with ID %d not found.", eventID),
		Err:     err,
	}
}

func generationError(eventID int64, err error) *Error {
	return &Error{
		EventID: eventID,
		Message: MsgGenerationFailed,
		Err:     err,
	}
}
