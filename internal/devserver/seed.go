package devserver

import (
	"fmt"
	"time"
)

// SeedUser is a demo account created by Seed
type SeedUser struct {
	Email    string
	Password string
}

// SeedEvent is a demo listing created by Seed for the first seeded user
type SeedEvent struct {
	Title       string
	Description string
	Price       float64
	In          time.Duration
}

var (
	DefaultSeedUsers = []SeedUser{
		{Email: "organizer@evently.dev", Password: "organizer123"},
		{Email: "guest@evently.dev", Password: "guest123"},
	}

	// one listing per price range plus a free one that falls in no range
	DefaultSeedEvents = []SeedEvent{
		{Title: "Open Rehearsal", Description: "Orchestra warm-up session", Price: 0, In: 7 * 24 * time.Hour},
		{Title: "Comedy Night", Description: "Local stand-up line-up", Price: 25, In: 14 * 24 * time.Hour},
		{Title: "Jazz in the Park", Description: "Quartet under the stars", Price: 150, In: 30 * 24 * time.Hour},
		{Title: "Championship Final", Description: "Courtside seats", Price: 450, In: 60 * 24 * time.Hour},
	}
)

// Seed fills an empty store with demo users and events. The events are
// created by the first user.
func Seed(store *Store, users []SeedUser, evs []SeedEvent) error {
	if len(users) == 0 {
		return nil
	}

	var ownerID string
	for i, u := range users {
		created, err := store.CreateUser(u.Email, u.Password)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
		if i == 0 {
			ownerID = created.ID
		}
	}

	now := store.now().Truncate(time.Hour)
	for _, e := range evs {
		if _, err := store.CreateEvent(ownerID, e.Title, e.Description, e.Price, now.Add(e.In)); err != nil {
			return fmt.Errorf("failed to seed event %s: %w", e.Title, err)
		}
	}
	return nil
}
