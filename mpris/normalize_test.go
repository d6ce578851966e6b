package mpris

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"

	"mediastate/mediastate"
)

func TestPickCandidate_PrefersPlaying(t *testing.T) {
	name, ok := pickCandidate([]candidate{
		{name: "org.mpris.MediaPlayer2.vlc", status: "Paused", probeOK: true},
		{name: "org.mpris.MediaPlayer2.spotify", status: "Playing", probeOK: true},
		{name: "org.mpris.MediaPlayer2.mpv", status: "Paused", probeOK: true},
	})

	assert.True(t, ok)
	assert.Equal(t, "org.mpris.MediaPlayer2.spotify", name)
}

func TestPickCandidate_FallsBackToFirstProbed(t *testing.T) {
	name, ok := pickCandidate([]candidate{
		{name: "org.mpris.MediaPlayer2.vlc", status: "Paused", probeOK: true},
		{name: "org.mpris.MediaPlayer2.mpv", status: "Stopped", probeOK: true},
	})

	assert.True(t, ok)
	assert.Equal(t, "org.mpris.MediaPlayer2.vlc", name)
}

func TestPickCandidate_SkipsFailedProbes(t *testing.T) {
	name, ok := pickCandidate([]candidate{
		{name: "org.mpris.MediaPlayer2.zombie", probeOK: false},
		{name: "org.mpris.MediaPlayer2.mpv", status: "Paused", probeOK: true},
	})

	assert.True(t, ok)
	assert.Equal(t, "org.mpris.MediaPlayer2.mpv", name)

	_, ok = pickCandidate([]candidate{
		{name: "org.mpris.MediaPlayer2.zombie", probeOK: false},
	})
	assert.False(t, ok)
}

func TestStateFromMetadata(t *testing.T) {
	md := map[string]dbus.Variant{
		"xesam:artist": dbus.MakeVariant([]string{"CHVRCHES", "Robert Smith"}),
		"xesam:album":  dbus.MakeVariant("Screen Violence"),
		"xesam:title":  dbus.MakeVariant("How Not To Drown"),
	}

	st := stateFromMetadata(md)

	assert.Equal(t, mo.Some("CHVRCHES, Robert Smith"), st.Artist)
	assert.Equal(t, mo.Some("Screen Violence"), st.Subtitle)
	assert.Equal(t, mo.Some("How Not To Drown"), st.Title)
}

func TestStateFromMetadata_MissingFieldsStayNone(t *testing.T) {
	st := stateFromMetadata(map[string]dbus.Variant{
		"xesam:title": dbus.MakeVariant("Untitled"),
	})

	assert.True(t, st.Artist.IsAbsent())
	assert.True(t, st.Subtitle.IsAbsent())
	assert.Equal(t, mo.Some("Untitled"), st.Title)
}

func TestStateFromMetadata_InterfaceArtistList(t *testing.T) {
	// Some players hand over the artist list as []interface{}.
	v := dbus.MakeVariantWithSignature([]interface{}{"A", 7, "B"}, dbus.ParseSignatureMust("av"))
	st := stateFromMetadata(map[string]dbus.Variant{
		"xesam:artist": v,
	})

	assert.Equal(t, mo.Some("A, B"), st.Artist)
}

func TestCoerceShuffle(t *testing.T) {
	cases := []struct {
		name string
		in   dbus.Variant
		want mo.Option[bool]
	}{
		{"bool true", dbus.MakeVariant(true), mo.Some(true)},
		{"bool false", dbus.MakeVariant(false), mo.Some(false)},
		{"vlc double on", dbus.MakeVariant(float64(1)), mo.Some(true)},
		{"vlc double off", dbus.MakeVariant(float64(0)), mo.Some(false)},
		{"int32", dbus.MakeVariant(int32(1)), mo.Some(true)},
		{"int64 zero", dbus.MakeVariant(int64(0)), mo.Some(false)},
		{"uint32", dbus.MakeVariant(uint32(2)), mo.Some(true)},
		{"byte", dbus.MakeVariant(byte(1)), mo.Some(true)},
		{"string is dropped", dbus.MakeVariant("true"), mo.None[bool]()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, coerceShuffle(tc.in))
		})
	}
}

func TestAutoRepeat(t *testing.T) {
	assert.True(t, autoRepeat("Track"))
	assert.False(t, autoRepeat("Playlist"))
	assert.False(t, autoRepeat("None"))
	assert.False(t, autoRepeat(""))
}

func TestStateFromMetadata_EmptyIsDefault(t *testing.T) {
	st := stateFromMetadata(map[string]dbus.Variant{})
	assert.Equal(t, mediastate.DefaultState(), st)
}
