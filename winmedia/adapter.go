//go:build windows

package winmedia

import (
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"mediastate/mediastate"
	"mediastate/winapi"
)

var log = logrus.WithField("component", "winmedia")

// session is the attached player window.
type session struct {
	player player
	window winapi.Window
}

// Adapter observes known desktop players through their window titles
// and drives them with WM_APPCOMMAND media keys. It has no native
// change signal, so the Controller polls it.
type Adapter struct {
	session *session
}

// New returns a Windows adapter. No resources are acquired until
// discovery.
func New() (*Adapter, error) {
	return &Adapter{}, nil
}

// Discover walks the player table in order and attaches to the first
// window whose title parses to a track (that player is audibly doing
// something); if none parses, it falls back to the first visible
// window of any known player. Enumeration failures for one player
// never abort the probe of the others.
func (a *Adapter) Discover() error {
	a.session = nil
	var fallback *session
	for _, p := range players {
		windows, err := winapi.FindWindowsByProcess(p.processes, winapi.WinVisible(true))
		if err != nil {
			log.WithField("player", p.name).WithError(err).Debug("window enumeration failed, skipping")
			continue
		}
		for _, w := range windows {
			if _, ok := p.parse(w.Title); ok {
				a.session = &session{player: p, window: w}
				log.WithField("player", p.name).Debug("attached to playing window")
				return nil
			}
			if fallback == nil && w.Title != "" {
				fallback = &session{player: p, window: w}
			}
		}
	}
	a.session = fallback
	return nil
}

// HasSession reports whether a player window is attached.
func (a *Adapter) HasSession() bool {
	return a.session != nil
}

// ReadState re-reads the attached window's title. A vanished window or
// a title that no longer names a track reads as the default sentinel.
// Shuffle and repeat are not observable from window titles and stay
// None; a parsed track is reported as Playing since titles only carry
// track names while something plays.
func (a *Adapter) ReadState() mediastate.State {
	if a.session == nil {
		return mediastate.DefaultState()
	}
	if err := a.session.window.RefreshTitle(); err != nil {
		log.WithError(err).Debug("session window is gone")
		return mediastate.DefaultState()
	}

	track, ok := a.session.player.parse(a.session.window.Title)
	if !ok {
		return mediastate.DefaultState()
	}

	return mediastate.State{
		Artist: mo.Some(track.Artist),
		Title:  mo.Some(track.Title),
		Status: mo.Some("Playing"),
	}
}

// Play sends the media play key to the attached window.
func (a *Adapter) Play() bool { return a.send(winapi.CmdMediaPlay) }

// Pause sends the media pause key.
func (a *Adapter) Pause() bool { return a.send(winapi.CmdMediaPause) }

// Stop degrades to stop-then-pause: desktop players ignore the bare
// stop key more often than not, and a failed stop fails the whole
// operation.
func (a *Adapter) Stop() bool {
	if !a.send(winapi.CmdMediaStop) {
		return false
	}
	return a.send(winapi.CmdMediaPause)
}

// Next sends the next-track key.
func (a *Adapter) Next() bool { return a.send(winapi.CmdMediaNextTrack) }

// Previous sends the previous-track key.
func (a *Adapter) Previous() bool { return a.send(winapi.CmdMediaPreviousTrack) }

func (a *Adapter) send(cmd int) bool {
	if a.session == nil {
		return false
	}
	if err := winapi.SendAppCommand(&a.session.window, cmd); err != nil {
		log.WithError(err).Debug("app command failed")
		return false
	}
	return true
}

// Shutdown detaches; window handles hold no resources of ours.
func (a *Adapter) Shutdown() {
	a.session = nil
}
