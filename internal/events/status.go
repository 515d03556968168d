package events

import "time"

type Status string

const (
	StatusUpcoming Status = "UPCOMING"
	StatusPast     Status = "PAST"
)

// StatusAt classifies the event relative to now
func (e Event) StatusAt(now time.Time) Status {
	if e.Date.Before(now) {
		return StatusPast
	}
	return StatusUpcoming
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}
