package bookings

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"evently-client/internal/graphql"
	"evently-client/internal/session"
	"evently-client/pkg/logger"
)

// Service is the signed-in user's booking ledger.
//
// Book does not touch the ledger: the BookEvent response carries no event
// data, so the ledger stays stale until the next FetchMine. Cancel removes
// the entry locally because the identifier is already known.
type Service interface {
	FetchMine(ctx context.Context, cred *session.Credential) ([]Booking, error)
	EnsureLoaded(ctx context.Context, cred *session.Credential) error
	Book(ctx context.Context, eventID string, cred *session.Credential) (*Confirmation, error)
	Cancel(ctx context.Context, bookingID string, cred *session.Credential) error
	Bookings() []Booking
}

type service struct {
	client graphql.Executor
	log    *logger.Logger

	mu       sync.RWMutex
	bookings []Booking

	loadStarted atomic.Bool
}

func NewService(client graphql.Executor, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		client: client,
		log:    log.WithComponent("bookings"),
	}
}

func (s *service) FetchMine(ctx context.Context, cred *session.Credential) ([]Booking, error) {
	if !authenticated(cred) {
		return nil, session.ErrNotAuthenticated
	}

	res, err := s.client.Execute(ctx, bookingsQuery, nil, cred)
	if err != nil {
		s.log.WarnContext(ctx, "failed to fetch bookings", slog.String("error", err.Error()))
		return nil, err
	}

	var fetched []Booking
	if err := res.Decode("bookings", &fetched); err != nil {
		s.log.WarnContext(ctx, "failed to decode bookings", slog.String("error", err.Error()))
		return nil, err
	}
	unique := dedupe(fetched)
	if dropped := len(fetched) - len(unique); dropped > 0 {
		s.log.WarnContext(ctx, "dropped duplicate bookings from response", slog.Int("dropped", dropped))
	}

	s.mu.Lock()
	s.bookings = unique
	s.mu.Unlock()

	return clone(unique), nil
}

// EnsureLoaded fetches once per service lifetime
func (s *service) EnsureLoaded(ctx context.Context, cred *session.Credential) error {
	if !s.loadStarted.CompareAndSwap(false, true) {
		return nil
	}
	_, err := s.FetchMine(ctx, cred)
	return err
}

func (s *service) Book(ctx context.Context, eventID string, cred *session.Credential) (*Confirmation, error) {
	if !authenticated(cred) {
		return nil, session.ErrNotAuthenticated
	}

	res, err := s.client.Execute(ctx, bookEventMutation, graphql.Variables{"id": eventID}, cred)
	if err != nil {
		s.log.WarnContext(ctx, "failed to book event",
			slog.String("event_id", eventID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	var conf Confirmation
	if err := res.Decode("bookEvent", &conf); err != nil {
		return nil, err
	}

	s.log.LogBookingCreated(ctx, conf.ID, eventID, cred.UserID)
	return &conf, nil
}

func (s *service) Cancel(ctx context.Context, bookingID string, cred *session.Credential) error {
	if !authenticated(cred) {
		return session.ErrNotAuthenticated
	}

	res, err := s.client.Execute(ctx, cancelBookingMutation, graphql.Variables{"id": bookingID}, cred)
	if err != nil {
		s.log.WarnContext(ctx, "failed to cancel booking",
			slog.String("booking_id", bookingID),
			slog.String("error", err.Error()),
		)
		return err
	}

	var ev cancelledEvent
	if err := res.Decode("cancelBooking", &ev); err != nil {
		return err
	}

	s.mu.Lock()
	s.bookings = remove(s.bookings, bookingID)
	s.mu.Unlock()

	s.log.LogBookingCancelled(ctx, bookingID, cred.UserID)
	return nil
}

func (s *service) Bookings() []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.bookings)
}

func authenticated(cred *session.Credential) bool {
	return cred != nil && cred.Token != ""
}

// remove drops the entry matching id and keeps the relative order of the rest
func remove(list []Booking, id string) []Booking {
	out := make([]Booking, 0, len(list))
	for _, b := range list {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

func dedupe(list []Booking) []Booking {
	seen := make(map[string]struct{}, len(list))
	out := make([]Booking, 0, len(list))
	for _, b := range list {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out
}

func clone(list []Booking) []Booking {
	out := make([]Booking, len(list))
	copy(out, list)
	return out
}
