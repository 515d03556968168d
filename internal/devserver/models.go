package devserver

import "time"

type user struct {
	ID           string
	Email        string
	PasswordHash []byte
}

type event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Price       float64
	CreatorID   string
}

type booking struct {
	ID        string
	UserID    string
	EventID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Views are what resolvers return. They carry every field a client may
// select; the endpoint does not trim to the selection set.

type userView struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

type eventView struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Creator     *userView `json:"creator"`
}

type bookingView struct {
	ID        string     `json:"_id"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Event     *eventView `json:"event,omitempty"`
	User      *userView  `json:"user,omitempty"`
}

type authData struct {
	UserID          string `json:"userId"`
	Token           string `json:"token"`
	TokenExpiration int    `json:"tokenExpiration"`
}
