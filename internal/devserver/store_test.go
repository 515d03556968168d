package devserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStore_Users(t *testing.T) {
	t.Parallel()

	store := NewStore(bcrypt.MinCost)

	created, err := store.CreateUser(" A@B.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", created.Email)

	_, err = store.CreateUser("a@b.com", "other")
	assert.ErrorIs(t, err, ErrUserExists)

	u, err := store.Authenticate("a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = store.Authenticate("a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = store.Authenticate("nobody@b.com", "secret")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStore_EventsAndBookings(t *testing.T) {
	t.Parallel()

	store := NewStore(bcrypt.MinCost)
	alice, err := store.CreateUser("alice@x.io", "pw")
	require.NoError(t, err)
	bob, err := store.CreateUser("bob@x.io", "pw")
	require.NoError(t, err)

	ev, err := store.CreateEvent(alice.ID, "Jazz", "Night", 40, time.Date(2030, 5, 1, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, ev.Creator)
	assert.Equal(t, "alice@x.io", ev.Creator.Email)

	b, err := store.BookEvent(bob.ID, ev.ID)
	require.NoError(t, err)
	require.NotNil(t, b.Event)
	assert.Equal(t, ev.ID, b.Event.ID)

	_, err = store.BookEvent(bob.ID, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)

	assert.Len(t, store.ListBookings(bob.ID), 1)
	assert.Empty(t, store.ListBookings(alice.ID))

	_, err = store.CancelBooking(alice.ID, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound, "only the owner may cancel")

	cancelled, err := store.CancelBooking(bob.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jazz", cancelled.Title)
	assert.Empty(t, store.ListBookings(bob.ID))
}

func TestStore_CancelBookingKeepsBookingWhenEventIsGone(t *testing.T) {
	t.Parallel()

	store := NewStore(bcrypt.MinCost)
	u, err := store.CreateUser("carol@x.io", "pw")
	require.NoError(t, err)
	ev, err := store.CreateEvent(u.ID, "Folk", "Calm", 10, time.Date(2030, 7, 1, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	b, err := store.BookEvent(u.ID, ev.ID)
	require.NoError(t, err)

	store.mu.Lock()
	store.events = nil
	store.mu.Unlock()

	_, err = store.CancelBooking(u.ID, b.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	store.mu.RLock()
	remaining := len(store.bookings)
	store.mu.RUnlock()
	assert.Equal(t, 1, remaining)
}

func TestOperationField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  string
	}{
		{query: "query { events { _id } }", want: "events"},
		{query: "\n  query Login($email: String!) {\n login(email: $email) { token } }", want: "login"},
		{query: "mutation CreateEvent($t: String!) { createEvent(eventInput: {title: $t}) { _id } }", want: "createEvent"},
		{query: "{ bookings { _id } }", want: "bookings"},
	}
	for _, tc := range cases {
		got, ok := operationField(tc.query)
		require.True(t, ok, tc.query)
		assert.Equal(t, tc.want, got)
	}

	_, ok := operationField("not graphql")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"2030-09-01T19:00", "2030-09-01T19:00:00", "2030-09-01T19:00:00.000Z", "2030-09-01"} {
		d, err := parseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2030, d.Year())
	}

	_, err := parseDate("tomorrow")
	assert.ErrorIs(t, err, ErrInvalidArguments)
}

func TestTokens(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("secret", 2*time.Hour)
	token, hours, err := tokens.Issue("u1", "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 2, hours)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = NewTokens("other", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
