package devserver

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// rootField matches the first selection of an operation:
// `query Name($v: T) { field(...`, `mutation { field`, `{ field`.
var rootField = regexp.MustCompile(`^\s*(?:(?:query|mutation)\b[^{]*)?\{\s*([A-Za-z_][A-Za-z0-9_]*)`)

// operationField returns the root field name of a document
func operationField(query string) (string, bool) {
	m := rootField.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	return m[1], true
}

type resolveRequest struct {
	vars          map[string]interface{}
	userID        string
	authenticated bool
}

type resolverFunc func(ctx context.Context, req resolveRequest) (interface{}, error)

// Resolvers bind arguments by the variable names the client documents use.
type Resolvers struct {
	store  *Store
	tokens *Tokens
}

func NewResolvers(store *Store, tokens *Tokens) *Resolvers {
	return &Resolvers{store: store, tokens: tokens}
}

func (r *Resolvers) lookup(field string) (resolverFunc, bool) {
	fn, ok := map[string]resolverFunc{
		"login":         r.login,
		"createUser":    r.createUser,
		"events":        r.events,
		"bookings":      r.bookings,
		"createEvent":   r.createEvent,
		"bookEvent":     r.bookEvent,
		"cancelBooking": r.cancelBooking,
	}[field]
	return fn, ok
}

func (r *Resolvers) login(_ context.Context, req resolveRequest) (interface{}, error) {
	email, password := stringVar(req.vars, "email"), stringVar(req.vars, "password")
	u, err := r.store.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	token, hours, err := r.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return authData{UserID: u.ID, Token: token, TokenExpiration: hours}, nil
}

func (r *Resolvers) createUser(_ context.Context, req resolveRequest) (interface{}, error) {
	return r.store.CreateUser(stringVar(req.vars, "email"), stringVar(req.vars, "password"))
}

func (r *Resolvers) events(_ context.Context, _ resolveRequest) (interface{}, error) {
	return r.store.ListEvents(), nil
}

func (r *Resolvers) bookings(_ context.Context, req resolveRequest) (interface{}, error) {
	if !req.authenticated {
		return nil, ErrUnauthenticated
	}
	return r.store.ListBookings(req.userID), nil
}

func (r *Resolvers) createEvent(_ context.Context, req resolveRequest) (interface{}, error) {
	if !req.authenticated {
		return nil, ErrUnauthenticated
	}

	price, err := floatVar(req.vars, "price")
	if err != nil {
		return nil, err
	}
	date, err := parseDate(stringVar(req.vars, "date"))
	if err != nil {
		return nil, err
	}
	return r.store.CreateEvent(req.userID, stringVar(req.vars, "title"), stringVar(req.vars, "desc"), price, date)
}

func (r *Resolvers) bookEvent(_ context.Context, req resolveRequest) (interface{}, error) {
	if !req.authenticated {
		return nil, ErrUnauthenticated
	}
	return r.store.BookEvent(req.userID, stringVar(req.vars, "id"))
}

func (r *Resolvers) cancelBooking(_ context.Context, req resolveRequest) (interface{}, error) {
	if !req.authenticated {
		return nil, ErrUnauthenticated
	}
	return r.store.CancelBooking(req.userID, stringVar(req.vars, "id"))
}

func stringVar(vars map[string]interface{}, name string) string {
	if s, ok := vars[name].(string); ok {
		return s
	}
	return ""
}

func floatVar(vars map[string]interface{}, name string) (float64, error) {
	switch v := vars[name].(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidArguments, name)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidArguments, name)
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date", ErrInvalidArguments)
}
