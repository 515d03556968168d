package devserver

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Store keeps the development endpoint's state in process memory
type Store struct {
	mu       sync.RWMutex
	users    map[string]*user
	byEmail  map[string]string
	events   []*event
	bookings []*booking

	hashCost int
	now      func() time.Time
}

// NewStore creates an empty store hashing passwords with the given bcrypt cost
func NewStore(hashCost int) *Store {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &Store{
		users:    make(map[string]*user),
		byEmail:  make(map[string]string),
		hashCost: hashCost,
		now:      time.Now,
	}
}

func (s *Store) CreateUser(email, password string) (userView, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return userView{}, ErrInvalidArguments
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return userView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return userView{}, ErrUserExists
	}

	u := &user{ID: uuid.NewString(), Email: email, PasswordHash: hash}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return userView{ID: u.ID, Email: u.Email}, nil
}

func (s *Store) Authenticate(email, password string) (userView, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	id, ok := s.byEmail[email]
	var u *user
	if ok {
		u = s.users[id]
	}
	s.mu.RUnlock()

	if u == nil {
		return userView{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return userView{}, ErrWrongPassword
	}
	return userView{ID: u.ID, Email: u.Email}, nil
}

func (s *Store) ListEvents() []eventView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]eventView, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, s.eventView(e))
	}
	return out
}

func (s *Store) CreateEvent(userID, title, description string, price float64, date time.Time) (eventView, error) {
	if strings.TrimSpace(title) == "" || price < 0 {
		return eventView{}, ErrInvalidArguments
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return eventView{}, ErrUserNotFound
	}

	e := &event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Date:        date.UTC(),
		Price:       price,
		CreatorID:   userID,
	}
	s.events = append(s.events, e)
	return s.eventView(e), nil
}

func (s *Store) ListBookings(userID string) []bookingView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]bookingView, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, s.bookingView(b))
		}
	}
	return out
}

func (s *Store) BookEvent(userID, eventID string) (bookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findEvent(eventID) == nil {
		return bookingView{}, ErrEventNotFound
	}

	now := s.now().UTC()
	b := &booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventID:   eventID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.bookings = append(s.bookings, b)
	return s.bookingView(b), nil
}

// CancelBooking deletes the user's booking and returns the booked event
func (s *Store) CancelBooking(userID, bookingID string) (eventView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.bookings {
		if b.ID != bookingID || b.UserID != userID {
			continue
		}
		e := s.findEvent(b.EventID)
		if e == nil {
			return eventView{}, ErrEventNotFound
		}
		s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
		return s.eventView(e), nil
	}
	return eventView{}, ErrBookingNotFound
}

// caller holds s.mu
func (s *Store) findEvent(id string) *event {
	for _, e := range s.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// caller holds s.mu
func (s *Store) eventView(e *event) eventView {
	v := eventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Price:       e.Price,
	}
	if u, ok := s.users[e.CreatorID]; ok {
		v.Creator = &userView{ID: u.ID, Email: u.Email}
	}
	return v
}

// caller holds s.mu
func (s *Store) bookingView(b *booking) bookingView {
	v := bookingView{ID: b.ID, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
	if e := s.findEvent(b.EventID); e != nil {
		ev := s.eventView(e)
		v.Event = &ev
	}
	if u, ok := s.users[b.UserID]; ok {
		v.User = &userView{ID: u.ID, Email: u.Email}
	}
	return v
}
