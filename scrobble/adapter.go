package scrobble

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"mediastate/mediastate"
)

var log = logrus.WithField("component", "scrobble")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// Browser extensions and native clients send no usable origin.
		if origin == "" || strings.HasPrefix(origin, "moz-extension://") ||
			strings.HasPrefix(origin, "chrome-extension://") {
			return true
		}
		originURL, err := url.Parse(origin)
		if err != nil {
			log.WithField("origin", origin).Debug("rejecting unparseable origin")
			return false
		}
		if originURL.Host == r.Host ||
			strings.HasPrefix(originURL.Host, "localhost:") ||
			strings.HasPrefix(originURL.Host, "127.0.0.1:") {
			return true
		}
		log.WithField("origin", origin).Debug("rejecting origin")
		return false
	},
}

// Adapter is the push-based session source. The "session" is whatever
// song the extension most recently reported; transport control is not
// something the extension offers, so every command returns false.
//
// Unlike the OS adapters, state arrives on WebSocket reader goroutines
// while the Controller worker reads it, so access is guarded here.
type Adapter struct {
	mu     sync.RWMutex
	state  mediastate.State
	active bool

	changes chan struct{}
}

// New returns an adapter ready to be mounted as an http.Handler.
func New() *Adapter {
	return &Adapter{changes: make(chan struct{}, 1)}
}

// Changes signals that a new event arrived; the Controller dedups.
func (a *Adapter) Changes() <-chan struct{} {
	return a.changes
}

// Discover is a no-op: sessions appear when the extension connects.
func (a *Adapter) Discover() error { return nil }

// HasSession reports whether the extension has announced a song.
func (a *Adapter) HasSession() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

// ReadState returns the last reported state.
func (a *Adapter) ReadState() mediastate.State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Play is unsupported; the extension cannot drive the player.
func (a *Adapter) Play() bool { return false }

// Pause is unsupported.
func (a *Adapter) Pause() bool { return false }

// Stop is unsupported.
func (a *Adapter) Stop() bool { return false }

// Next is unsupported.
func (a *Adapter) Next() bool { return false }

// Previous is unsupported.
func (a *Adapter) Previous() bool { return false }

// Shutdown drops the session; connected readers fail out on their own
// when the server closes.
func (a *Adapter) Shutdown() {
	a.mu.Lock()
	a.active = false
	a.state = mediastate.DefaultState()
	a.mu.Unlock()
}

// ServeHTTP upgrades the connection and consumes extension events
// until the peer goes away. Malformed payloads are logged and skipped.
func (a *Adapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Debug("upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	log.Debug("scrobble source connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("read error")
			}
			return
		}

		ev, err := ParseEvent(data)
		if err != nil {
			log.WithError(err).Debug("discarding malformed event")
			continue
		}
		a.Apply(ev)
	}
}

// Apply records the event's state and signals the change channel.
func (a *Adapter) Apply(ev Event) {
	a.mu.Lock()
	if ev.EventName == "stopped" {
		a.active = false
		a.state = mediastate.DefaultState()
	} else {
		a.active = true
		a.state = ev.State()
	}
	a.mu.Unlock()

	select {
	case a.changes <- struct{}{}:
	default:
	}
}
