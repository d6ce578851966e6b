//go:build windows

package winapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendAppCommand_GoneWindow(t *testing.T) {
	// A null handle is never a live window; the command must fail on
	// window liveness, not on the SendMessage return value.
	w := &Window{Handle: 0}
	assert.Error(t, SendAppCommand(w, CmdMediaPlay))
}
