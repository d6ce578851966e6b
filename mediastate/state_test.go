package mediastate

import (
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
)

func TestDefaultState_AllNone(t *testing.T) {
	st := DefaultState()

	assert.True(t, st.IsDefault())
	assert.True(t, st.Artist.IsAbsent())
	assert.True(t, st.Subtitle.IsAbsent())
	assert.True(t, st.Title.IsAbsent())
	assert.True(t, st.ShuffleActive.IsAbsent())
	assert.True(t, st.AutoRepeat.IsAbsent())
	assert.True(t, st.Status.IsAbsent())
}

func TestState_Equality(t *testing.T) {
	a := State{
		Artist: mo.Some("Boards of Canada"),
		Title:  mo.Some("Roygbiv"),
		Status: mo.Some("Playing"),
	}
	b := State{
		Artist: mo.Some("Boards of Canada"),
		Title:  mo.Some("Roygbiv"),
		Status: mo.Some("Playing"),
	}

	assert.True(t, a == b)
	assert.False(t, a.IsDefault())
}

func TestState_SingleFieldChangeBreaksEquality(t *testing.T) {
	base := State{
		Artist:        mo.Some("Artist"),
		Subtitle:      mo.Some("Album"),
		Title:         mo.Some("Title"),
		ShuffleActive: mo.Some(false),
		AutoRepeat:    mo.Some(false),
		Status:        mo.Some("Playing"),
	}

	variants := []State{base, base, base, base, base, base}
	variants[0].Artist = mo.Some("Other")
	variants[1].Subtitle = mo.None[string]()
	variants[2].Title = mo.Some("Other")
	variants[3].ShuffleActive = mo.Some(true)
	variants[4].AutoRepeat = mo.Some(true)
	variants[5].Status = mo.Some("Paused")

	for i, v := range variants {
		assert.False(t, v == base, "variant %d should differ from base", i)
	}
}

func TestState_NoneDiffersFromPresentZero(t *testing.T) {
	// A player that reports shuffle off is a different state from one
	// that never reports shuffle at all.
	off := State{ShuffleActive: mo.Some(false)}
	unknown := State{}

	assert.False(t, off == unknown)
}
