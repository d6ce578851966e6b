// Package scrobble is a push adapter fed by the Web Scrobbler browser
// extension over a WebSocket endpoint.
package scrobble

import (
	"encoding/json"

	"github.com/samber/mo"

	"mediastate/mediastate"
)

// Event is the subset of a Web Scrobbler event this adapter consumes.
type Event struct {
	EventName string `json:"eventName"`
	Data      struct {
		Song struct {
			Parsed struct {
				Album     string `json:"album"`
				Artist    string `json:"artist"`
				IsPlaying bool   `json:"isPlaying"`
				Track     string `json:"track"`
			} `json:"parsed"`
			Processed struct {
				Album  string `json:"album"`
				Artist string `json:"artist"`
				Track  string `json:"track"`
			} `json:"processed"`
		} `json:"song"`
	} `json:"data"`
}

// ParseEvent decodes an extension payload. Events that announce a
// running song are forced to count as playing even when the extension
// forgot to flag them.
func ParseEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, err
	}

	switch ev.EventName {
	case "nowplaying", "resumedplaying", "songchange":
		ev.Data.Song.Parsed.IsPlaying = true
	}
	return ev, nil
}

// State maps the event onto the normalized playback state. Processed
// fields win over parsed ones; shuffle and repeat are invisible to the
// extension and stay None.
func (e Event) State() mediastate.State {
	song := e.Data.Song

	var st mediastate.State
	if artist := pick(song.Processed.Artist, song.Parsed.Artist); artist != "" {
		st.Artist = mo.Some(artist)
	}
	if album := pick(song.Processed.Album, song.Parsed.Album); album != "" {
		st.Subtitle = mo.Some(album)
	}
	if track := pick(song.Processed.Track, song.Parsed.Track); track != "" {
		st.Title = mo.Some(track)
	}
	if song.Parsed.IsPlaying {
		st.Status = mo.Some("Playing")
	} else {
		st.Status = mo.Some("Paused")
	}
	return st
}

func pick(processed, parsed string) string {
	if processed != "" {
		return processed
	}
	return parsed
}
