//go:build darwin

package macmedia

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"mediastate/mediastate"
)

var log = logrus.WithField("component", "macmedia")

// Adapter drives Music and Spotify through osascript. Poll-based:
// AppleScript has no change signal we can subscribe to.
type Adapter struct {
	player string // attached application name, "" when none
}

// New returns a macOS adapter; osascript availability is only checked
// by actually running it during discovery.
func New() (*Adapter, error) {
	return &Adapter{}, nil
}

// Discover probes each supported player, attaching to the first one
// that reports "playing", else the first one that is running at all.
// A player whose probe errors is skipped.
func (a *Adapter) Discover() error {
	a.player = ""
	fallback := ""
	for _, player := range players {
		state, err := runAppleScript(probeScript(player))
		if err != nil {
			log.WithField("player", player).WithError(err).Debug("probe failed, skipping")
			continue
		}
		if state == "" {
			continue
		}
		if state == "playing" {
			a.player = player
			return nil
		}
		if fallback == "" {
			fallback = player
		}
	}
	a.player = fallback
	return nil
}

// HasSession reports whether a player is attached.
func (a *Adapter) HasSession() bool {
	return a.player != ""
}

// ReadState reads the attached player's current track; a quit player
// or a script failure reads as the default sentinel.
func (a *Adapter) ReadState() mediastate.State {
	if a.player == "" {
		return mediastate.DefaultState()
	}
	output, err := runAppleScript(metadataScript(a.player))
	if err != nil {
		log.WithError(err).Debug("metadata script failed")
		return mediastate.DefaultState()
	}
	st, ok := parseMetadata(output)
	if !ok {
		log.WithField("output", output).Debug("unexpected metadata format")
		return mediastate.DefaultState()
	}
	return st
}

// Play resumes the attached player.
func (a *Adapter) Play() bool { return a.control("play") }

// Pause pauses the attached player.
func (a *Adapter) Pause() bool { return a.control("pause") }

// Stop stops Music outright; Spotify has no stop verb, so it degrades
// to pause.
func (a *Adapter) Stop() bool {
	if a.player == "Spotify" {
		return a.control("pause")
	}
	return a.control("stop")
}

// Next skips forward.
func (a *Adapter) Next() bool { return a.control("next track") }

// Previous skips back.
func (a *Adapter) Previous() bool { return a.control("previous track") }

func (a *Adapter) control(action string) bool {
	if a.player == "" {
		return false
	}
	if _, err := runAppleScript(controlScript(a.player, action)); err != nil {
		log.WithField("action", action).WithError(err).Debug("control script failed")
		return false
	}
	return true
}

// Shutdown detaches; osascript runs hold nothing open.
func (a *Adapter) Shutdown() {
	a.player = ""
}

func runAppleScript(script string) (string, error) {
	cmd := exec.Command("osascript", "-e", script)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}
