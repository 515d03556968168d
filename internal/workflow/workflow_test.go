package workflow

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"evently-client/internal/bookings"
	"evently-client/internal/events"
	"evently-client/internal/graphql/graphqltest"
	"evently-client/internal/session"
	"evently-client/internal/shared/validation"
	"evently-client/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogData = `{"events":[
	{"_id":"e1","title":"Jazz","description":"Night","date":"2030-05-01T20:00:00Z","price":40,"creator":{"_id":"u9"}}
]}`

type fixture struct {
	fake     *graphqltest.Fake
	sessions *session.Store
	catalog  events.Service
	wf       *Workflow
}

func newFixture(t *testing.T, signedIn bool) *fixture {
	t.Helper()

	fake := graphqltest.New().Reply("Events", catalogData)
	store := session.NewStore()
	if signedIn {
		store.Login("t1", "u1")
	}

	catalog := events.NewService(fake, logger.Discard())
	_, err := catalog.FetchAll(context.Background())
	require.NoError(t, err)

	ledger := bookings.NewService(fake, logger.Discard())
	return &fixture{
		fake:     fake,
		sessions: store,
		catalog:  catalog,
		wf:       New(catalog, ledger, store, logger.Discard()),
	}
}

func TestWorkflow_InitialState(t *testing.T) {
	t.Parallel()

	f := newFixture(t, false)
	snap := f.wf.Snapshot()

	assert.Equal(t, Idle, snap.State)
	assert.Nil(t, snap.Event)
}

func TestWorkflow_Create(t *testing.T) {
	t.Parallel()

	draft := events.Draft{Title: "Gala", Description: "Dinner", Price: 75, Date: "2030-09-01T19:00"}

	t.Run("start then cancel never creates", func(t *testing.T) {
		f := newFixture(t, true)

		require.NoError(t, f.wf.StartCreate())
		assert.Equal(t, Creating, f.wf.Snapshot().State)

		f.wf.Cancel()

		assert.Equal(t, Idle, f.wf.Snapshot().State)
		assert.Equal(t, 0, f.fake.CallCount("CreateEvent"))
	})

	t.Run("anonymous users cannot start", func(t *testing.T) {
		f := newFixture(t, false)

		assert.ErrorIs(t, f.wf.StartCreate(), session.ErrNotAuthenticated)
		assert.Equal(t, Idle, f.wf.Snapshot().State)
	})

	t.Run("confirm appends to catalog and returns to idle", func(t *testing.T) {
		f := newFixture(t, true)
		f.fake.Reply("CreateEvent", `{"createEvent":{"_id":"e2","title":"Gala","description":"Dinner","date":"2030-09-01T19:00:00Z","price":75}}`)

		require.NoError(t, f.wf.StartCreate())
		ev, err := f.wf.ConfirmCreate(context.Background(), draft)
		require.NoError(t, err)

		assert.Equal(t, Idle, f.wf.Snapshot().State)
		_, ok := f.catalog.FindByID(ev.ID)
		assert.True(t, ok)
	})

	t.Run("invalid draft is abandoned and returns to idle", func(t *testing.T) {
		f := newFixture(t, true)

		require.NoError(t, f.wf.StartCreate())
		_, err := f.wf.ConfirmCreate(context.Background(), events.Draft{Title: "Gala"})

		assert.True(t, validation.IsValidationError(err))
		assert.Equal(t, Idle, f.wf.Snapshot().State)
		assert.Equal(t, 0, f.fake.CallCount("CreateEvent"))
	})

	t.Run("remote failure still returns to idle", func(t *testing.T) {
		f := newFixture(t, true)
		f.fake.Fail("CreateEvent", graphqltest.TransportError("CreateEvent"))

		require.NoError(t, f.wf.StartCreate())
		_, err := f.wf.ConfirmCreate(context.Background(), draft)

		assert.Error(t, err)
		assert.Equal(t, Idle, f.wf.Snapshot().State)
	})

	t.Run("confirm outside creating is rejected", func(t *testing.T) {
		f := newFixture(t, true)

		_, err := f.wf.ConfirmCreate(context.Background(), draft)

		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, 0, f.fake.CallCount("CreateEvent"))
	})
}

func TestWorkflow_ViewAndBook(t *testing.T) {
	t.Parallel()

	t.Run("select opens the detail view", func(t *testing.T) {
		f := newFixture(t, false)

		require.NoError(t, f.wf.Select("e1"))

		snap := f.wf.Snapshot()
		assert.Equal(t, Viewing, snap.State)
		require.NotNil(t, snap.Event)
		assert.Equal(t, "Jazz", snap.Event.Title)
	})

	t.Run("unknown event stays idle", func(t *testing.T) {
		f := newFixture(t, false)

		assert.ErrorIs(t, f.wf.Select("missing"), events.ErrEventNotFound)
		assert.Equal(t, Idle, f.wf.Snapshot().State)
	})

	t.Run("anonymous confirm makes no remote call", func(t *testing.T) {
		f := newFixture(t, false)
		require.NoError(t, f.wf.Select("e1"))
		before := len(f.fake.Calls())

		conf, err := f.wf.ConfirmBooking(context.Background())

		assert.NoError(t, err)
		assert.Nil(t, conf)
		assert.Equal(t, Idle, f.wf.Snapshot().State)
		assert.Len(t, f.fake.Calls(), before)
	})

	t.Run("signed-in confirm books and returns to idle", func(t *testing.T) {
		f := newFixture(t, true)
		f.fake.Reply("BookEvent", `{"bookEvent":{"_id":"b1","createdAt":"2030-01-01T00:00:00Z","updatedAt":"2030-01-01T00:00:00Z"}}`)
		require.NoError(t, f.wf.Select("e1"))

		conf, err := f.wf.ConfirmBooking(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "b1", conf.ID)
		assert.Equal(t, Idle, f.wf.Snapshot().State)
		calls := f.fake.Calls()
		last := calls[len(calls)-1]
		assert.Equal(t, "BookEvent", last.Operation)
		assert.Equal(t, "e1", last.Vars["id"])
		assert.Equal(t, "t1", last.Cred.Token)
	})

	t.Run("booking failure still returns to idle", func(t *testing.T) {
		f := newFixture(t, true)
		f.fake.Fail("BookEvent", graphqltest.TransportError("BookEvent"))
		require.NoError(t, f.wf.Select("e1"))

		_, err := f.wf.ConfirmBooking(context.Background())

		assert.Error(t, err)
		assert.Equal(t, Idle, f.wf.Snapshot().State)
	})

	t.Run("booking failure is logged against the acting user", func(t *testing.T) {
		f := newFixture(t, true)
		var buf bytes.Buffer
		f.wf.log = logger.NewWithWriter(&buf, "warn", "json")
		f.fake.Fail("BookEvent", graphqltest.TransportError("BookEvent"))
		require.NoError(t, f.wf.Select("e1"))

		_, err := f.wf.ConfirmBooking(context.Background())
		require.Error(t, err)

		assert.Contains(t, buf.String(), `"user_id":"u1"`)
		assert.Contains(t, buf.String(), `"event_id":"e1"`)
	})

	t.Run("cancel closes the detail view", func(t *testing.T) {
		f := newFixture(t, true)
		require.NoError(t, f.wf.Select("e1"))

		f.wf.Cancel()

		snap := f.wf.Snapshot()
		assert.Equal(t, Idle, snap.State)
		assert.Nil(t, snap.Event)
		assert.Equal(t, 0, f.fake.CallCount("BookEvent"))
	})
}

func TestWorkflow_MutualExclusion(t *testing.T) {
	t.Parallel()

	t.Run("cannot select while creating", func(t *testing.T) {
		f := newFixture(t, true)
		require.NoError(t, f.wf.StartCreate())

		assert.ErrorIs(t, f.wf.Select("e1"), ErrInvalidTransition)
		assert.Equal(t, Creating, f.wf.Snapshot().State)
	})

	t.Run("cannot create while viewing", func(t *testing.T) {
		f := newFixture(t, true)
		require.NoError(t, f.wf.Select("e1"))

		assert.ErrorIs(t, f.wf.StartCreate(), ErrInvalidTransition)
		assert.Equal(t, Viewing, f.wf.Snapshot().State)
	})

	t.Run("concurrent openers yield exactly one modal", func(t *testing.T) {
		f := newFixture(t, true)

		var wg sync.WaitGroup
		results := make(chan error, 2)
		wg.Add(2)
		go func() { defer wg.Done(); results <- f.wf.StartCreate() }()
		go func() { defer wg.Done(); results <- f.wf.Select("e1") }()
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.NotEqual(t, Idle, f.wf.Snapshot().State)
	})
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "creating", Creating.String())
	assert.Equal(t, "viewing", Viewing.String())
	assert.Equal(t, "unknown", State(9).String())
}
