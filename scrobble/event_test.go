package scrobble

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nowPlayingPayload = `{
	"eventName": "nowplaying",
	"data": {
		"song": {
			"parsed": {
				"album": "",
				"artist": "hozier",
				"isPlaying": false,
				"track": "too sweet"
			},
			"processed": {
				"album": "Unheard",
				"artist": "Hozier",
				"track": "Too Sweet"
			}
		}
	}
}`

func TestParseEvent_ForcesPlayingForSongEvents(t *testing.T) {
	for _, name := range []string{"nowplaying", "resumedplaying", "songchange"} {
		ev, err := ParseEvent([]byte(`{"eventName":"` + name + `","data":{"song":{"parsed":{"isPlaying":false}}}}`))
		require.NoError(t, err)
		assert.True(t, ev.Data.Song.Parsed.IsPlaying, "event %s", name)
	}

	ev, err := ParseEvent([]byte(`{"eventName":"paused","data":{"song":{"parsed":{"isPlaying":false}}}}`))
	require.NoError(t, err)
	assert.False(t, ev.Data.Song.Parsed.IsPlaying)
}

func TestParseEvent_Malformed(t *testing.T) {
	_, err := ParseEvent([]byte(`{"eventName":`))
	assert.Error(t, err)
}

func TestEventState_ProcessedWinsOverParsed(t *testing.T) {
	ev, err := ParseEvent([]byte(nowPlayingPayload))
	require.NoError(t, err)

	st := ev.State()
	assert.Equal(t, mo.Some("Hozier"), st.Artist)
	assert.Equal(t, mo.Some("Unheard"), st.Subtitle)
	assert.Equal(t, mo.Some("Too Sweet"), st.Title)
	assert.Equal(t, mo.Some("Playing"), st.Status)
}

func TestEventState_FallsBackToParsed(t *testing.T) {
	ev, err := ParseEvent([]byte(`{
		"eventName": "paused",
		"data": {"song": {"parsed": {"artist": "hozier", "track": "too sweet", "isPlaying": false}}}
	}`))
	require.NoError(t, err)

	st := ev.State()
	assert.Equal(t, mo.Some("hozier"), st.Artist)
	assert.Equal(t, mo.Some("too sweet"), st.Title)
	assert.True(t, st.Subtitle.IsAbsent())
	assert.Equal(t, mo.Some("Paused"), st.Status)
}
