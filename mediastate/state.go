// Package mediastate normalizes the host OS media session into a single
// change-notified playback state and exposes transport control over it.
package mediastate

import "github.com/samber/mo"

// State is a normalized snapshot of the active media session. It is a
// plain value type: two snapshots are the same state iff they compare
// equal with ==, and that comparison is the only dedup mechanism in the
// whole module. Fields that the platform does not report stay None.
type State struct {
	Artist        mo.Option[string] `json:"artist"`
	Subtitle      mo.Option[string] `json:"subtitle"`
	Title         mo.Option[string] `json:"title"`
	ShuffleActive mo.Option[bool]   `json:"isShuffleActive"`
	AutoRepeat    mo.Option[bool]   `json:"autoRepeatMode"`
	Status        mo.Option[string] `json:"playbackStatus"`
}

// DefaultState returns the empty sentinel reported when no session
// exists or a platform read fails. It is an ordinary comparable value,
// never nil, so callers can test against it directly.
func DefaultState() State {
	return State{}
}

// IsDefault reports whether s is the empty sentinel.
func (s State) IsDefault() bool {
	return s == State{}
}
