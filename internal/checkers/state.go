package checkers

import (
	"github.com/pkg/errors"
)

// State is the lifecycle and async-negotiation state of a game.
type State byte

const (
	Active = State(iota)
	Ended
	AsyncStart
	AsyncAccepted
	AsyncDenied
	AsyncActive
)

var stateNames = [...]string{
	Active:        "ACTIVE",
	Ended:         "ENDED",
	AsyncStart:    "ASYNC_START",
	AsyncAccepted: "ASYNC_ACCEPTED",
	AsyncDenied:   "ASYNC_DENIED",
	AsyncActive:   "ASYNC_ACTIVE",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Playable reports whether moves may be submitted in this state.
func (s State) Playable() bool {
	return s == Active || s == AsyncActive
}

// Negotiating reports whether an async request is waiting for an answer or
// for the requester to acknowledge it.
func (s State) Negotiating() bool {
	return s == AsyncStart || s == AsyncAccepted || s == AsyncDenied
}

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return errors.Errorf("unknown state %q", text)
}
