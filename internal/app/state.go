package app

import "sync/atomic"

// State is the bootstrap lifecycle position.
type State int32

const (
	StateStarting State = iota
	StateConnecting
	StateListening
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "STARTING"
	case StateConnecting:
		return "DB_CONNECTING"
	case StateListening:
		return "LISTENING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}

type stateBox struct {
	v atomic.Int32
}

func (b *stateBox) load() State {
	return State(b.v.Load())
}

func (b *stateBox) store(s State) {
	b.v.Store(int32(s))
}
