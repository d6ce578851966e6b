package winmedia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpotifyTitle(t *testing.T) {
	cases := []struct {
		title string
		want  Track
		ok    bool
	}{
		{"Hozier - Too Sweet", Track{Artist: "Hozier", Title: "Too Sweet"}, true},
		{"Miike Snow - Animal - Remix", Track{Artist: "Miike Snow", Title: "Animal - Remix"}, true},
		{"Advertisement", Track{Artist: "Unknown Artist", Title: "Advertisement"}, true},
		{"Spotify", Track{}, false},
		{"Spotify Premium", Track{}, false},
		{"", Track{}, false},
	}

	for _, tc := range cases {
		got, ok := ParseSpotifyTitle(tc.title)
		assert.Equal(t, tc.ok, ok, "title %q", tc.title)
		assert.Equal(t, tc.want, got, "title %q", tc.title)
	}
}

func TestParseTidalTitle(t *testing.T) {
	cases := []struct {
		title string
		want  Track
		ok    bool
	}{
		{"Too Sweet - Hozier", Track{Artist: "Hozier", Title: "Too Sweet"}, true},
		{"Animal - Remix - Miike Snow", Track{Artist: "Miike Snow", Title: "Animal - Remix"}, true},
		{"Sandstorm", Track{Artist: "Unknown Artist", Title: "Sandstorm"}, true},
		{"TIDAL", Track{}, false},
		{"", Track{}, false},
	}

	for _, tc := range cases {
		got, ok := ParseTidalTitle(tc.title)
		assert.Equal(t, tc.ok, ok, "title %q", tc.title)
		assert.Equal(t, tc.want, got, "title %q", tc.title)
	}
}

func TestParseAppleMusicTitle(t *testing.T) {
	got, ok := ParseAppleMusicTitle("Too Sweet - Single by Hozier - Apple Music - Google Chrome")
	assert.True(t, ok)
	assert.Equal(t, Track{Artist: "Hozier", Title: "Too Sweet"}, got)

	got, ok = ParseAppleMusicTitle("Unreal Unearth - Album by Hozier - Apple Music")
	assert.True(t, ok)
	assert.Equal(t, Track{Artist: "Hozier", Title: "Unreal Unearth"}, got)
}

func TestParseAppleMusicTitle_NonMusicPages(t *testing.T) {
	for _, title := range []string{
		"",
		"Apple Music",
		"Browse - Apple Music",
		"Some random tab - Google Chrome",
	} {
		_, ok := ParseAppleMusicTitle(title)
		assert.False(t, ok, "title %q should not parse", title)
	}
}
