package nightbot

import (
	"errors"

	"github.com/samber/mo"

	"mediastate/mediastate"
)

// Adapter exposes the song-request queue as a poll-based session. The
// remote service itself is the session, so one always exists; an empty
// queue simply reads as the default sentinel. Nightbot offers no
// transport control, so every command returns false.
type Adapter struct {
	client *Client
}

// NewAdapter wraps client as a session adapter.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// Discover refreshes the token if needed; the queue needs no session
// lookup beyond that.
func (a *Adapter) Discover() error {
	if err := a.client.RefreshToken(); err != nil {
		return err
	}
	return nil
}

// HasSession is always true: the queue endpoint is the session.
func (a *Adapter) HasSession() bool { return true }

// ReadState polls the queue. Errors and an empty queue both degrade to
// the default sentinel; the requester rides along in the artist field
// the way the queue overlay traditionally shows it.
func (a *Adapter) ReadState() mediastate.State {
	song, err := a.client.GetCurrentSong()
	if err != nil {
		if !errors.Is(err, ErrNoCurrentSong) {
			log.WithError(err).Debug("queue poll failed")
		}
		return mediastate.DefaultState()
	}

	artist := song.Artist
	if song.Requester != "" {
		artist += " (requested by " + song.Requester + ")"
	}
	return mediastate.State{
		Artist: mo.Some(artist),
		Title:  mo.Some(song.Title),
		Status: mo.Some("Playing"),
	}
}

// Play is unsupported by the queue API.
func (a *Adapter) Play() bool { return false }

// Pause is unsupported.
func (a *Adapter) Pause() bool { return false }

// Stop is unsupported.
func (a *Adapter) Stop() bool { return false }

// Next is unsupported.
func (a *Adapter) Next() bool { return false }

// Previous is unsupported.
func (a *Adapter) Previous() bool { return false }

// Shutdown has nothing to release.
func (a *Adapter) Shutdown() {}
