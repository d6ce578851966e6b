// Package winmedia observes and controls desktop media players on
// Windows through their window titles and media-key app commands.
package winmedia

import "strings"

// Track is the artist/title pair recovered from a window title.
type Track struct {
	Artist string
	Title  string
}

// browserProcesses are the browsers checked for an Apple Music tab.
var browserProcesses = []string{
	"chrome.exe",
	"msedge.exe",
	"firefox.exe",
	"opera.exe",
	"brave.exe",
}

// ParseSpotifyTitle parses a Spotify window title of the form
// "Artist - Song". The bare application name means nothing is playing.
func ParseSpotifyTitle(title string) (Track, bool) {
	if title == "" || title == "Spotify" || title == "Spotify Premium" {
		return Track{}, false
	}

	parts := strings.Split(title, " - ")
	if len(parts) >= 2 {
		return Track{
			Artist: parts[0],
			Title:  strings.Join(parts[1:], " - "),
		}, true
	}

	return Track{Artist: "Unknown Artist", Title: title}, true
}

// ParseTidalTitle parses a TIDAL window title of the form
// "Song - Artist".
func ParseTidalTitle(title string) (Track, bool) {
	if title == "" || title == "TIDAL" {
		return Track{}, false
	}

	parts := strings.Split(title, " - ")
	if len(parts) >= 2 {
		return Track{
			Artist: parts[len(parts)-1],
			Title:  strings.Join(parts[:len(parts)-1], " - "),
		}, true
	}

	return Track{Artist: "Unknown Artist", Title: title}, true
}

// ParseAppleMusicTitle parses a browser tab title for an Apple Music
// page. Music pages look like "Song - Single by Artist - Apple Music";
// anything without the " by " marker and enough hyphens is some other
// Apple Music page, not a playing track.
func ParseAppleMusicTitle(title string) (Track, bool) {
	if title == "" || !strings.Contains(title, "Apple Music") {
		return Track{}, false
	}
	if !strings.Contains(title, " by ") || strings.Count(title, "-") < 2 {
		return Track{}, false
	}

	// Drop the browser suffix after "Apple Music", then the marker
	// itself.
	if idx := strings.Index(title, "Apple Music"); idx > 0 {
		title = title[:idx+len("Apple Music")]
	}
	title = strings.TrimSpace(strings.TrimSuffix(title, " - Apple Music"))

	byParts := strings.Split(title, " by ")
	if len(byParts) < 2 {
		return Track{Artist: "Unknown Artist", Title: title}, true
	}

	artist := strings.TrimSpace(byParts[len(byParts)-1])
	songTitle := strings.Join(byParts[:len(byParts)-1], " by ")
	for _, suffix := range []string{" - Album", " - Single", " - EP"} {
		if idx := strings.LastIndex(songTitle, suffix); idx >= 0 {
			songTitle = songTitle[:idx]
			break
		}
	}
	if len(songTitle) > 0 && songTitle[0] < 32 {
		songTitle = songTitle[1:]
	}

	return Track{Artist: artist, Title: strings.TrimSpace(songTitle)}, true
}

// player describes one supported desktop player.
type player struct {
	name      string
	processes []string
	parse     func(string) (Track, bool)
}

// players are probed in this order during discovery.
var players = []player{
	{name: "Spotify", processes: []string{"Spotify.exe"}, parse: ParseSpotifyTitle},
	{name: "TIDAL", processes: []string{"TIDAL.exe"}, parse: ParseTidalTitle},
	{name: "Apple Music", processes: browserProcesses, parse: ParseAppleMusicTitle},
}
