// Package graphqltest provides a scripted graphql.Executor for tests.
package graphqltest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"evently-client/internal/graphql"
	"evently-client/internal/session"
)

var ErrUnscripted = errors.New("no response scripted")

// Call records one Execute invocation
type Call struct {
	Operation string
	Vars      graphql.Variables
	Cred      *session.Credential
}

type reply struct {
	data string
	err  error
}

// Fake answers operations by name. Replies are consumed in order; the last
// reply for an operation is repeated once the queue is drained.
type Fake struct {
	mu      sync.Mutex
	replies map[string][]reply
	last    map[string]reply
	calls   []Call
}

func New() *Fake {
	return &Fake{
		replies: make(map[string][]reply),
		last:    make(map[string]reply),
	}
}

// Reply queues a successful response whose data object is the given JSON
func (f *Fake) Reply(operation, data string) *Fake {
	return f.queue(operation, reply{data: data})
}

// Fail queues a failed response
func (f *Fake) Fail(operation string, err error) *Fake {
	return f.queue(operation, reply{err: err})
}

func (f *Fake) queue(operation string, r reply) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[operation] = append(f.replies[operation], r)
	return f
}

func (f *Fake) Execute(ctx context.Context, doc graphql.Document, vars graphql.Variables, cred *session.Credential) (*graphql.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var credCopy *session.Credential
	if cred != nil {
		c := *cred
		credCopy = &c
	}
	f.calls = append(f.calls, Call{Operation: doc.Name, Vars: vars, Cred: credCopy})

	r, ok := f.next(doc.Name)
	if !ok {
		return nil, &graphql.OperationError{Kind: graphql.KindTransport, Operation: doc.Name, Err: ErrUnscripted}
	}

	if r.err != nil {
		return nil, r.err
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal([]byte(r.data), &data); err != nil {
		return nil, fmt.Errorf("graphqltest: bad scripted data for %s: %w", doc.Name, err)
	}
	return &graphql.Result{Operation: doc.Name, StatusCode: 200, Data: data}, nil
}

func (f *Fake) next(operation string) (reply, bool) {
	if queue := f.replies[operation]; len(queue) > 0 {
		f.replies[operation] = queue[1:]
		f.last[operation] = queue[0]
		return queue[0], true
	}
	r, ok := f.last[operation]
	return r, ok
}

// Calls returns every recorded call
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount counts calls for one operation
func (f *Fake) CallCount(operation string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Operation == operation {
			n++
		}
	}
	return n
}

// TransportError is a convenience failure value
func TransportError(operation string) error {
	return &graphql.OperationError{Kind: graphql.KindTransport, Operation: operation, StatusCode: 500, Err: graphql.ErrUnexpectedStatus}
}
