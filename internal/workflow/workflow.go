// Package workflow drives the create, view and book interactions of the
// events page as a single-state machine.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"evently-client/internal/bookings"
	"evently-client/internal/events"
	"evently-client/internal/session"
	"evently-client/pkg/logger"
)

var ErrInvalidTransition = errors.New("invalid workflow transition")

// Catalog is the subset of events.Service the workflow needs
type Catalog interface {
	Create(ctx context.Context, draft events.Draft, cred *session.Credential) (*events.Event, error)
	FindByID(id string) (events.Event, bool)
}

// Ledger is the subset of bookings.Service the workflow needs
type Ledger interface {
	Book(ctx context.Context, eventID string, cred *session.Credential) (*bookings.Confirmation, error)
}

// Workflow applies every transition under its lock before any remote call
// is made, so callers always observe whole transitions. Remote failures are
// logged and returned but never hold the workflow in a modal state.
type Workflow struct {
	catalog  Catalog
	ledger   Ledger
	sessions *session.Store
	log      *logger.Logger

	mu       sync.Mutex
	state    State
	selected events.Event
}

func New(catalog Catalog, ledger Ledger, sessions *session.Store, log *logger.Logger) *Workflow {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Workflow{
		catalog:  catalog,
		ledger:   ledger,
		sessions: sessions,
		log:      log.WithComponent("workflow"),
		state:    Idle,
	}
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := Snapshot{State: w.state}
	if w.state == Viewing {
		ev := w.selected
		snap.Event = &ev
	}
	return snap
}

// StartCreate opens the creation form. Only signed-in users may create.
func (w *Workflow) StartCreate() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Idle {
		return w.invalid("startCreate")
	}
	if !w.sessions.Authenticated() {
		return session.ErrNotAuthenticated
	}
	w.state = Creating
	return nil
}

// Cancel closes whichever modal is open
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.toIdle()
}

// ConfirmCreate closes the form and then submits the draft. Invalid drafts
// are abandoned: the returned error reports why, but the state is Idle
// either way.
func (w *Workflow) ConfirmCreate(ctx context.Context, draft events.Draft) (*events.Event, error) {
	w.mu.Lock()
	if w.state != Creating {
		err := w.invalid("confirmCreate")
		w.mu.Unlock()
		return nil, err
	}
	w.toIdle()
	w.mu.Unlock()

	cred := w.sessions.CredentialRef()
	ev, err := w.catalog.Create(ctx, draft, cred)
	if err != nil {
		w.actor(cred).WarnContext(ctx, "event creation abandoned", slog.String("error", err.Error()))
		return nil, err
	}
	return ev, nil
}

// Select opens the detail view for an event of the catalog
func (w *Workflow) Select(eventID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != Idle {
		return w.invalid("select")
	}
	ev, ok := w.catalog.FindByID(eventID)
	if !ok {
		return fmt.Errorf("%w: %s", events.ErrEventNotFound, eventID)
	}
	w.state = Viewing
	w.selected = ev
	return nil
}

// ConfirmBooking closes the detail view and, when signed in, books the
// selected event. Anonymous confirmation behaves like Cancel.
func (w *Workflow) ConfirmBooking(ctx context.Context) (*bookings.Confirmation, error) {
	w.mu.Lock()
	if w.state != Viewing {
		err := w.invalid("confirmBooking")
		w.mu.Unlock()
		return nil, err
	}
	ev := w.selected
	w.toIdle()
	w.mu.Unlock()

	cred := w.sessions.CredentialRef()
	if cred == nil {
		return nil, nil
	}

	conf, err := w.ledger.Book(ctx, ev.ID, cred)
	if err != nil {
		w.actor(cred).WarnContext(ctx, "booking failed",
			slog.String("event_id", ev.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return conf, nil
}

// actor scopes the workflow logger to the acting user, if any
func (w *Workflow) actor(cred *session.Credential) *logger.Logger {
	if cred == nil || cred.UserID == "" {
		return w.log
	}
	return w.log.WithUserID(cred.UserID)
}

func (w *Workflow) toIdle() {
	w.state = Idle
	w.selected = events.Event{}
}

func (w *Workflow) invalid(action string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, w.state)
}
