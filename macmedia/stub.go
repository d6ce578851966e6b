//go:build !darwin

package macmedia

import (
	"errors"

	"mediastate/mediastate"
)

// Adapter is a no-op off macOS.
type Adapter struct{}

// New always fails on non-Darwin platforms.
func New() (*Adapter, error) {
	return nil, errors.New("macmedia requires osascript")
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
