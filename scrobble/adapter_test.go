package scrobble

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediastate/mediastate"
)

func TestAdapter_ApplySetsSessionAndSignals(t *testing.T) {
	a := New()
	assert.False(t, a.HasSession())
	assert.True(t, a.ReadState().IsDefault())

	ev, err := ParseEvent([]byte(nowPlayingPayload))
	require.NoError(t, err)
	a.Apply(ev)

	assert.True(t, a.HasSession())
	assert.Equal(t, mo.Some("Too Sweet"), a.ReadState().Title)

	select {
	case <-a.Changes():
	default:
		t.Fatal("Apply should have signalled the change channel")
	}
}

func TestAdapter_StoppedEventClearsSession(t *testing.T) {
	a := New()
	ev, err := ParseEvent([]byte(nowPlayingPayload))
	require.NoError(t, err)
	a.Apply(ev)
	require.True(t, a.HasSession())

	a.Apply(Event{EventName: "stopped"})
	assert.False(t, a.HasSession())
	assert.True(t, a.ReadState().IsDefault())
}

func TestAdapter_SignalNeverBlocks(t *testing.T) {
	a := New()
	ev, err := ParseEvent([]byte(nowPlayingPayload))
	require.NoError(t, err)

	// Nothing drains the channel; repeated applies must not deadlock.
	for i := 0; i < 5; i++ {
		a.Apply(ev)
	}
	assert.True(t, a.HasSession())
}

func TestAdapter_CommandsUnsupported(t *testing.T) {
	a := New()
	assert.False(t, a.Play())
	assert.False(t, a.Pause())
	assert.False(t, a.Stop())
	assert.False(t, a.Next())
	assert.False(t, a.Previous())
}

func TestAdapter_WebSocketRoundTrip(t *testing.T) {
	a := New()
	srv := httptest.NewServer(a)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(nowPlayingPayload)))

	require.Eventually(t, func() bool {
		return a.HasSession()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, mo.Some("Hozier"), a.ReadState().Artist)

	// Malformed frames are skipped without killing the stream.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"eventName":"stopped"}`)))

	require.Eventually(t, func() bool {
		return !a.HasSession()
	}, time.Second, 5*time.Millisecond)
}

func TestAdapter_DrivesControllerPush(t *testing.T) {
	a := New()
	ctrl := mediastate.NewController(a)
	defer ctrl.Cleanup()

	got := make(chan mediastate.State, 4)
	ctrl.OnChange(func(s mediastate.State) { got <- s })

	ev, err := ParseEvent([]byte(nowPlayingPayload))
	require.NoError(t, err)
	a.Apply(ev)

	select {
	case st := <-got:
		assert.Equal(t, mo.Some("Too Sweet"), st.Title)
	case <-time.After(time.Second):
		t.Fatal("controller never observed the pushed state")
	}
}

func TestAdapter_StoppedEventReachesSubscribers(t *testing.T) {
	a := New()
	ctrl := mediastate.NewController(a)
	defer ctrl.Cleanup()

	got := make(chan mediastate.State, 4)
	ctrl.OnChange(func(s mediastate.State) { got <- s })

	ev, err := ParseEvent([]byte(nowPlayingPayload))
	require.NoError(t, err)
	a.Apply(ev)

	select {
	case st := <-got:
		require.False(t, st.IsDefault())
	case <-time.After(time.Second):
		t.Fatal("controller never observed the pushed state")
	}

	// A stopped event must surface as the sentinel, not leave the last
	// song cached forever.
	a.Apply(Event{EventName: "stopped"})

	select {
	case st := <-got:
		assert.True(t, st.IsDefault())
	case <-time.After(time.Second):
		t.Fatal("controller never delivered the stop transition")
	}
	assert.True(t, ctrl.State().IsDefault())
}
