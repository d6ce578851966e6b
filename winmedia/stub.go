//go:build !windows

package winmedia

import (
	"errors"

	"mediastate/mediastate"
)

// Adapter is a no-op off Windows.
type Adapter struct{}

// New always fails on non-Windows platforms.
func New() (*Adapter, error) {
	return nil, errors.New("winmedia requires the Win32 window manager")
}

func (a *Adapter) Discover() error { return nil }

func (a *Adapter) HasSession() bool { return false }

func (a *Adapter) ReadState() mediastate.State { return mediastate.DefaultState() }

func (a *Adapter) Play() bool     { return false }
func (a *Adapter) Pause() bool    { return false }
func (a *Adapter) Stop() bool     { return false }
func (a *Adapter) Next() bool     { return false }
func (a *Adapter) Previous() bool { return false }

func (a *Adapter) Shutdown() {}
