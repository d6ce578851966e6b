// Package macmedia observes and controls macOS music players through
// AppleScript.
package macmedia

import (
	"fmt"
	"strings"

	"github.com/samber/mo"

	"mediastate/mediastate"
)

// players are probed in priority order.
var players = []string{"Music", "Spotify"}

// probeScript returns the player state token ("playing", "paused",
// "stopped") or an empty string when the application is not running.
func probeScript(player string) string {
	return fmt.Sprintf(`
		tell application "System Events"
			if exists (process "%s") then
				tell application "%s" to return player state as string
			end if
			return ""
		end tell`, player, player)
}

// metadataScript returns "name|artist|album|state" for the current
// track.
func metadataScript(player string) string {
	return fmt.Sprintf(`tell application "%s"
		set trackName to name of current track
		set trackArtist to artist of current track
		set trackAlbum to album of current track
		set playerState to player state as string
		return trackName & "|" & trackArtist & "|" & trackAlbum & "|" & playerState
	end tell`, player)
}

func controlScript(player, action string) string {
	return fmt.Sprintf(`tell application "%s" to %s`, player, action)
}

// parseMetadata turns metadataScript output into a State. Shuffle and
// repeat are not part of the script and stay None. The status token is
// whatever AppleScript reported, unvalidated.
func parseMetadata(output string) (mediastate.State, bool) {
	parts := strings.Split(output, "|")
	if len(parts) != 4 {
		return mediastate.DefaultState(), false
	}
	return mediastate.State{
		Title:    mo.Some(strings.TrimSpace(parts[0])),
		Artist:   mo.Some(strings.TrimSpace(parts[1])),
		Subtitle: mo.Some(strings.TrimSpace(parts[2])),
		Status:   mo.Some(strings.TrimSpace(parts[3])),
	}, true
}
