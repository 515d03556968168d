package events

import (
	"strings"
	"time"
)

// Creator is the user who published an event. The server payload may be
// partial, so Email is optional.
type Creator struct {
	ID    string `json:"_id"`
	Email string `json:"email,omitempty"`
}

// Event is immutable client-side once fetched
type Event struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Creator     Creator   `json:"creator"`
}

// OwnedBy reports whether userID published the event
func (e Event) OwnedBy(userID string) bool {
	return userID != "" && e.Creator.ID == userID
}

// Draft is the user input for a new event
type Draft struct {
	Title       string  `json:"title" validate:"notblank"`
	Description string  `json:"description" validate:"notblank"`
	Price       float64 `json:"price" validate:"gt=0"`
	Date        string  `json:"date" validate:"notblank"`
}

func (d Draft) trimmed() Draft {
	return Draft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Price:       d.Price,
		Date:        strings.TrimSpace(d.Date),
	}
}
