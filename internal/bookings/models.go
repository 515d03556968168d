package bookings

import (
	"time"

	"evently-client/internal/events"
)

// Booking embeds a snapshot of the booked event as of fetch time. It is
// never re-synced with the event catalog.
type Booking struct {
	ID        string       `json:"_id"`
	CreatedAt time.Time    `json:"createdAt"`
	Event     events.Event `json:"event"`
}

// Confirmation is the BookEvent response. It lacks the event data needed to
// build a Booking, which is why Book leaves the ledger stale.
type Confirmation struct {
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// cancelledEvent is the CancelBooking response: the event the booking was for
type cancelledEvent struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}
