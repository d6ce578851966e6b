//go:build !linux

package mpris

import (
	"errors"

	"mediastate/mediastate"
)

// Adapter is a no-op on platforms without a D-Bus session bus.
type Adapter struct{}

// New always fails on non-Linux platforms.
func New() (*Adapter, error) {
	return nil, errors.New("mpris requires a D-Bus session bus")
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
