package workflow

import "evently-client/internal/events"

// State is the modal currently open. Only one can be open at a time.
type State int

const (
	Idle State = iota
	Creating
	Viewing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Creating:
		return "creating"
	case Viewing:
		return "viewing"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent read of the workflow. Event is set only while
// Viewing.
type Snapshot struct {
	State State
	Event *events.Event
}
