package mediastate

// Adapter is the platform-specific session layer: it discovers the
// active media session, reads its metadata and issues transport
// commands. Platform errors never escape an Adapter: a vanished
// session or an unreadable property reads as DefaultState, a command
// with no session returns false, and an optional capability the player
// lacks resolves to None.
//
// An Adapter's live platform handle is owned by the Controller worker;
// implementations only need to be safe for concurrent use if they
// receive data outside that worker (push adapters guard themselves).
type Adapter interface {
	// Discover locates the currently active session, preferring a
	// playing one, falling back to the first enumerated. Finding no
	// session is not an error. A single misbehaving player must be
	// skipped, never abort discovery of the others.
	Discover() error

	// HasSession reports whether a session is currently attached.
	HasSession() bool

	// ReadState reads the attached session's state, returning
	// DefaultState when there is no session or the read fails.
	ReadState() State

	Play() bool
	Pause() bool
	Stop() bool
	Next() bool
	Previous() bool

	// Shutdown releases platform resources. Idempotent, and safe even
	// if initialization never completed.
	Shutdown()
}

// Notifier is implemented by adapters with native change signals. The
// Controller then reconciles on each signal instead of polling; the
// dedup semantics are identical either way, so redundant native
// signals collapse into a single notification.
type Notifier interface {
	Changes() <-chan struct{}
}
