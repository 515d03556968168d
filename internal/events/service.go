package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"evently-client/internal/graphql"
	"evently-client/internal/session"
	"evently-client/internal/shared/validation"
	"evently-client/pkg/logger"
)

var ErrEventNotFound = errors.New("event not found")

// Service is the in-memory event catalog kept in sync with the remote
// endpoint. Insertion order is fetch order followed by append order.
type Service interface {
	FetchAll(ctx context.Context) ([]Event, error)
	EnsureLoaded(ctx context.Context) error
	Create(ctx context.Context, draft Draft, cred *session.Credential) (*Event, error)
	FindByID(id string) (Event, bool)
	Events() []Event
}

type service struct {
	client graphql.Executor
	log    *logger.Logger

	mu     sync.RWMutex
	events []Event

	loadStarted atomic.Bool
}

func NewService(client graphql.Executor, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		client: client,
		log:    log.WithComponent("events"),
	}
}

// FetchAll replaces the whole collection on success and leaves it untouched
// on failure.
func (s *service) FetchAll(ctx context.Context) ([]Event, error) {
	res, err := s.client.Execute(ctx, eventsQuery, nil, nil)
	if err != nil {
		s.log.WarnContext(ctx, "failed to fetch events", slog.String("error", err.Error()))
		return nil, err
	}

	var fetched []Event
	if err := res.Decode("events", &fetched); err != nil {
		s.log.WarnContext(ctx, "failed to decode events", slog.String("error", err.Error()))
		return nil, err
	}

	unique := dedupe(fetched)
	if dropped := len(fetched) - len(unique); dropped > 0 {
		s.log.WarnContext(ctx, "dropped duplicate events from response", slog.Int("dropped", dropped))
	}

	s.mu.Lock()
	s.events = unique
	s.mu.Unlock()

	return clone(unique), nil
}

// EnsureLoaded fetches once per service lifetime. The latch is set before
// the request goes out, so a failed first fetch is not retried.
func (s *service) EnsureLoaded(ctx context.Context) error {
	if !s.loadStarted.CompareAndSwap(false, true) {
		return nil
	}
	_, err := s.FetchAll(ctx)
	return err
}

// Create validates the draft locally, then issues CreateEvent. The returned
// event is appended with its creator linked to the acting session.
func (s *service) Create(ctx context.Context, draft Draft, cred *session.Credential) (*Event, error) {
	draft = draft.trimmed()
	if err := validation.Struct(draft); err != nil {
		return nil, err
	}
	if cred == nil || cred.Token == "" {
		return nil, session.ErrNotAuthenticated
	}

	res, err := s.client.Execute(ctx, createEventMutation, graphql.Variables{
		"title": draft.Title,
		"desc":  draft.Description,
		"price": draft.Price,
		"date":  draft.Date,
	}, cred)
	if err != nil {
		s.log.WarnContext(ctx, "failed to create event", slog.String("error", err.Error()))
		return nil, err
	}

	var created Event
	if err := res.Decode("createEvent", &created); err != nil {
		return nil, err
	}
	created.Creator = Creator{ID: cred.UserID}

	s.mu.Lock()
	if indexOf(s.events, created.ID) >= 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("create event: duplicate id %q in catalog", created.ID)
	}
	s.events = append(s.events, created)
	s.mu.Unlock()

	s.log.LogEventCreated(ctx, created.ID, cred.UserID)
	return &created, nil
}

func (s *service) FindByID(id string) (Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexOf(s.events, id); i >= 0 {
		return s.events[i], true
	}
	return Event{}, false
}

func (s *service) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.events)
}

func indexOf(list []Event, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// dedupe keeps the first occurrence of every identifier
func dedupe(list []Event) []Event {
	seen := make(map[string]struct{}, len(list))
	out := make([]Event, 0, len(list))
	for _, e := range list {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

func clone(list []Event) []Event {
	out := make([]Event, len(list))
	copy(out, list)
	return out
}
