// Package mpris reads and controls MPRIS media players on the D-Bus
// session bus.
package mpris

import (
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/samber/mo"

	"mediastate/mediastate"
)

// BusNamePrefix is the well-known prefix every MPRIS player claims.
const BusNamePrefix = "org.mpris.MediaPlayer2."

// candidate is one enumerated player with its probed status.
type candidate struct {
	name    string
	status  string
	probeOK bool
}

// pickCandidate selects the session to attach to: the first candidate
// reporting Playing, else the first whose probe succeeded. Enumeration
// order is whatever the bus reported for this one call; no stability
// across calls is assumed.
func pickCandidate(cands []candidate) (string, bool) {
	fallback := ""
	for _, c := range cands {
		if !c.probeOK {
			continue
		}
		if c.status == "Playing" {
			return c.name, true
		}
		if fallback == "" {
			fallback = c.name
		}
	}
	return fallback, fallback != ""
}

// stateFromMetadata maps an MPRIS Metadata property map onto the
// artist/album/title fields. Missing or oddly-typed entries stay None.
func stateFromMetadata(md map[string]dbus.Variant) mediastate.State {
	var st mediastate.State
	if artists := stringList(md, "xesam:artist"); len(artists) > 0 {
		st.Artist = mo.Some(strings.Join(artists, ", "))
	}
	if album, ok := stringValue(md, "xesam:album"); ok {
		st.Subtitle = mo.Some(album)
	}
	if title, ok := stringValue(md, "xesam:title"); ok {
		st.Title = mo.Some(title)
	}
	return st
}

// coerceShuffle turns the Shuffle property into a bool. Some players
// (VLC) misreport the wire type as a numeric, so any numeric value is
// reinterpreted as a boolean instead of being dropped.
func coerceShuffle(v dbus.Variant) mo.Option[bool] {
	switch val := v.Value().(type) {
	case bool:
		return mo.Some(val)
	case float64:
		return mo.Some(val != 0)
	case int32:
		return mo.Some(val != 0)
	case int64:
		return mo.Some(val != 0)
	case uint32:
		return mo.Some(val != 0)
	case byte:
		return mo.Some(val != 0)
	default:
		return mo.None[bool]()
	}
}

// autoRepeat maps a LoopStatus value: only track-scoped repeat counts.
func autoRepeat(loopStatus string) bool {
	return loopStatus == "Track"
}

func stringValue(md map[string]dbus.Variant, key string) (string, bool) {
	v, ok := md[key]
	if !ok {
		return "", false
	}
	s, ok := v.Value().(string)
	return s, ok
}

func stringList(md map[string]dbus.Variant, key string) []string {
	v, ok := md[key]
	if !ok {
		return nil
	}
	switch val := v.Value().(type) {
	case []string:
		return val
	case []interface{}:
		var out []string
		for _, e := range val {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{val}
	default:
		return nil
	}
}
