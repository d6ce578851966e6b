package mediastate

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "mediastate")

const (
	// DefaultPollInterval is the reconciliation tick for adapters
	// without native change signals.
	DefaultPollInterval = time.Second

	// DefaultJoinTimeout bounds how long Cleanup waits for the worker.
	DefaultJoinTimeout = 2 * time.Second
)

// Option configures a Controller at construction time.
type Option func(*Controller)

// WithPollInterval overrides the reconciliation tick.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithJoinTimeout overrides the bounded wait in Cleanup.
func WithJoinTimeout(d time.Duration) Option {
	return func(c *Controller) { c.joinTimeout = d }
}

// Controller owns exactly one Adapter and reconciles it into a cached
// State on a dedicated background worker. External callers only ever
// read the cached snapshot or enqueue transport commands; all platform
// I/O happens on the worker, so a non-thread-safe platform connection
// is never touched from two goroutines.
type Controller struct {
	adapter     Adapter
	interval    time.Duration
	joinTimeout time.Duration

	mu       sync.RWMutex
	state    State
	callback func(State)

	// active mirrors the adapter's session presence for callers; only
	// the worker writes it.
	active atomic.Bool

	cmds     chan func()
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewController starts a Controller for adapter. The worker begins
// with a best-effort session discovery and then reconciles until
// Cleanup is called.
func NewController(adapter Adapter, opts ...Option) *Controller {
	c := &Controller{
		adapter:     adapter,
		interval:    DefaultPollInterval,
		joinTimeout: DefaultJoinTimeout,
		cmds:        make(chan func(), 16),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.run()
	return c
}

// OnChange registers the single change callback. It is invoked at most
// once per distinct state, strictly after the cached state has been
// replaced, always from the worker and never concurrently.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.callback = fn
	c.mu.Unlock()
}

// State returns the last reconciled snapshot without touching the
// platform. Before the first reconciliation it is DefaultState.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Play hands the command to the worker. The return value means
// "accepted": false when no session is active, true once the command
// is queued; platform-level failure surfaces only in debug logs.
func (c *Controller) Play() bool { return c.submit("play", Adapter.Play) }

// Pause hands the command to the worker; see Play for semantics.
func (c *Controller) Pause() bool { return c.submit("pause", Adapter.Pause) }

// Stop hands the command to the worker; see Play for semantics.
func (c *Controller) Stop() bool { return c.submit("stop", Adapter.Stop) }

// Next hands the command to the worker; see Play for semantics.
func (c *Controller) Next() bool { return c.submit("next", Adapter.Next) }

// Previous hands the command to the worker; see Play for semantics.
func (c *Controller) Previous() bool { return c.submit("previous", Adapter.Previous) }

func (c *Controller) submit(name string, cmd func(Adapter) bool) bool {
	if !c.active.Load() {
		return false
	}
	// Checked on its own first: once stop is closed the select below
	// would race it against the buffered send and sometimes "accept" a
	// command no worker will ever run.
	select {
	case <-c.stop:
		return false
	default:
	}
	fn := func() {
		if !cmd(c.adapter) {
			log.WithField("command", name).Debug("transport command rejected")
		}
	}
	select {
	case c.cmds <- fn:
		return true
	case <-c.stop:
		return false
	}
}

// Cleanup stops the worker and releases the adapter. It waits up to
// the join timeout for the worker to exit; a worker that misses the
// deadline is abandoned rather than forced, which is acceptable since
// the host process is tearing down too. Safe to call repeatedly.
func (c *Controller) Cleanup() {
	c.stopOnce.Do(func() { close(c.stop) })
	select {
	case <-c.done:
	case <-time.After(c.joinTimeout):
		log.Warn("worker did not stop within join timeout, abandoning it")
	}
}

func (c *Controller) run() {
	defer close(c.done)
	defer c.adapter.Shutdown()

	if err := c.adapter.Discover(); err != nil {
		log.WithError(err).Debug("initial session discovery failed")
	}
	c.active.Store(c.adapter.HasSession())
	c.reconcile()

	var changes <-chan struct{}
	if n, ok := c.adapter.(Notifier); ok {
		changes = n.Changes()
	}

	var tick <-chan time.Time
	if changes == nil {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-c.stop:
			return
		case fn := <-c.cmds:
			fn()
		case <-changes:
			c.reconcile()
		case <-tick:
			c.reconcile()
		}
	}
}

// reconcile re-derives the state from the adapter and notifies on
// change. Any kind of platform failure inside the adapter degrades to
// the default sentinel or a no-op; nothing here can end the loop.
// Losing the session delivers the default sentinel once through the
// normal dedup path; every later session-less pass is a no-op.
func (c *Controller) reconcile() {
	has := c.adapter.HasSession()
	c.active.Store(has)

	next := DefaultState()
	if has {
		next = c.adapter.ReadState()
	}

	c.mu.Lock()
	if next == c.state {
		c.mu.Unlock()
		return
	}
	c.state = next
	cb := c.callback
	c.mu.Unlock()

	log.WithField("state", next).Debug("playback state changed")
	if cb != nil {
		cb(next)
	}
}
