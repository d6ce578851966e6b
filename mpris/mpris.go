//go:build linux

package mpris

import (
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"mediastate/mediastate"
)

var log = logrus.WithField("component", "mpris")

const (
	objectPath  = "/org/mpris/MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"
)

// Adapter attaches to one MPRIS player on the session bus. The bus
// connection and the attached session are owned by the Controller
// worker; nothing here is safe for concurrent use and nothing needs
// to be.
type Adapter struct {
	conn      *dbus.Conn
	session   dbus.BusObject // nil when no player is attached
	closeOnce sync.Once
}

// New connects to the D-Bus session bus.
func New() (*Adapter, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return &Adapter{conn: conn}, nil
}

// Discover enumerates MPRIS bus names and attaches to the first
// playing one, falling back to the first that answers a status probe.
// A player that fails its probe is skipped so one broken client never
// hides the others.
func (a *Adapter) Discover() error {
	var names []string
	if err := a.conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return fmt.Errorf("listing bus names: %w", err)
	}

	var cands []candidate
	for _, name := range names {
		if !strings.HasPrefix(name, BusNamePrefix) {
			continue
		}
		c := candidate{name: name}
		v, err := a.conn.Object(name, objectPath).GetProperty(playerIface + ".PlaybackStatus")
		if err != nil {
			log.WithField("player", name).WithError(err).Debug("status probe failed, skipping")
		} else if s, ok := v.Value().(string); ok {
			c.status = s
			c.probeOK = true
		}
		cands = append(cands, c)
	}

	a.session = nil
	if name, ok := pickCandidate(cands); ok {
		log.WithField("player", name).Debug("attached to player")
		a.session = a.conn.Object(name, objectPath)
	}
	return nil
}

// HasSession reports whether a player is attached.
func (a *Adapter) HasSession() bool {
	return a.session != nil
}

// ReadState reads the attached player's state. A vanished player or a
// failed mandatory property read yields the default sentinel; the
// optional Shuffle and LoopStatus properties degrade to None.
func (a *Adapter) ReadState() mediastate.State {
	if a.session == nil {
		return mediastate.DefaultState()
	}

	metaVar, err := a.session.GetProperty(playerIface + ".Metadata")
	if err != nil {
		log.WithError(err).Debug("metadata read failed")
		return mediastate.DefaultState()
	}
	statusVar, err := a.session.GetProperty(playerIface + ".PlaybackStatus")
	if err != nil {
		log.WithError(err).Debug("status read failed")
		return mediastate.DefaultState()
	}

	md, _ := metaVar.Value().(map[string]dbus.Variant)
	st := stateFromMetadata(md)
	if s, ok := statusVar.Value().(string); ok {
		st.Status = mo.Some(s)
	}
	if v, err := a.session.GetProperty(playerIface + ".Shuffle"); err == nil {
		st.ShuffleActive = coerceShuffle(v)
	}
	if v, err := a.session.GetProperty(playerIface + ".LoopStatus"); err == nil {
		if s, ok := v.Value().(string); ok {
			st.AutoRepeat = mo.Some(autoRepeat(s))
		}
	}
	return st
}

// Play issues the MPRIS Play call; false when no player is attached.
func (a *Adapter) Play() bool { return a.call("Play") }

// Pause issues the MPRIS Pause call.
func (a *Adapter) Pause() bool { return a.call("Pause") }

// Stop issues the MPRIS Stop call; MPRIS has a real stop, so no
// degradation is needed here.
func (a *Adapter) Stop() bool { return a.call("Stop") }

// Next issues the MPRIS Next call.
func (a *Adapter) Next() bool { return a.call("Next") }

// Previous issues the MPRIS Previous call.
func (a *Adapter) Previous() bool { return a.call("Previous") }

func (a *Adapter) call(method string) bool {
	if a.session == nil {
		return false
	}
	if call := a.session.Call(playerIface+"."+method, 0); call.Err != nil {
		log.WithField("method", method).WithError(call.Err).Debug("transport call failed")
		return false
	}
	return true
}

// Shutdown detaches and closes the bus connection. Idempotent.
func (a *Adapter) Shutdown() {
	a.closeOnce.Do(func() {
		a.session = nil
		if a.conn != nil {
			_ = a.conn.Close()
		}
	})
}
