//go:build windows

package winapi

import "fmt"

const wmAppCommand = 0x0319

// WM_APPCOMMAND media codes, passed to SendAppCommand unshifted.
const (
	CmdMediaNextTrack     = 11
	CmdMediaPreviousTrack = 12
	CmdMediaStop          = 13
	CmdMediaPlayPause     = 14
	CmdMediaPlay          = 46
	CmdMediaPause         = 47
)

// SendAppCommand delivers a WM_APPCOMMAND media key to the window, the
// same message the keyboard driver sends for hardware media keys. The
// SendMessage result is not a success signal: DefWindowProc returns 0
// even when the app acted on the command, so only a vanished window
// counts as failure.
func SendAppCommand(w *Window, cmd int) error {
	alive, _, _ := isWindow.Call(w.Handle)
	if alive == 0 {
		return fmt.Errorf("window %#x is gone", w.Handle)
	}
	sendMessageW.Call(w.Handle, wmAppCommand, w.Handle, uintptr(cmd)<<16)
	return nil
}
