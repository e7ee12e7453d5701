package models

import "errors"

// Action indicates the intent carried by a reservation event.
type Action string

const (
	ActionBooking      Action = "booking"
	ActionCancellation Action = "cancellation"
)

// Source identifies the connector an event originated from.
type Source string

const (
	SourceManual  Source = "manual"
	SourceMail    Source = "gmail_auto"
	SourcePortal  Source = "portal_sync"
	SourceWebhook Source = "webhook"
)

// ReservationEvent is the normalized booking/cancellation intent extracted
// from any connector. Unclassifiable input never becomes an event.
type ReservationEvent struct {
	Action       Action  `json:"action"`
	Date         string  `json:"date"`  // YYYY-MM-DD
	Start        string  `json:"start"` // HH:MM
	End          string  `json:"end"`   // HH:MM, optional for cancellations
	CustomerName string  `json:"customer_name"`
	Studio       string  `json:"studio"`
	Type         string  `json:"type"` // slot type the event produces (gmail, charter, block)
	Source       Source  `json:"source"`
	Confidence   float64 `json:"confidence"`
	MessageID    string  `json:"message_id,omitempty"`
	Sender       string  `json:"sender,omitempty"`
	Subject      string  `json:"subject,omitempty"`
}

var (
	ErrMissingDate  = errors.New("reservation event: missing date")
	ErrMissingStart = errors.New("reservation event: missing start time")
	ErrMissingEnd   = errors.New("reservation event: booking requires an end time")
	ErrBadAction    = errors.New("reservation event: unknown action")
)

// Validate enforces the event invariants: bookings carry date, start and
// end; cancellations carry date and start.
func (e *ReservationEvent) Validate() error {
	switch e.Action {
	case ActionBooking:
		if e.Date == "" {
			return ErrMissingDate
		}
		if e.Start == "" {
			return ErrMissingStart
		}
		if e.End == "" {
			return ErrMissingEnd
		}
	case ActionCancellation:
		if e.Date == "" {
			return ErrMissingDate
		}
		if e.Start == "" {
			return ErrMissingStart
		}
	default:
		return ErrBadAction
	}
	return nil
}
