// Package platform selects the session adapter for the host OS and
// wires it into a running controller.
package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/oauth2"

	"mediastate/config"
	"mediastate/macmedia"
	"mediastate/mediastate"
	"mediastate/mpris"
	"mediastate/nightbot"
	"mediastate/scrobble"
	"mediastate/winmedia"
)

// ErrUnsupportedPlatform is returned when no adapter exists for the
// host OS. Fatal to media integration only, never to the host process.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Select inspects the host OS exactly once (unless cfg names a method
// explicitly) and returns a started controller. The second return is
// non-nil only for the scrobble method, so the caller can mount its
// WebSocket endpoint. Nothing downstream re-inspects the OS.
func Select(cfg config.Config) (*mediastate.Controller, *scrobble.Adapter, error) {
	method := cfg.Method
	if method == "" || method == "auto" {
		switch runtime.GOOS {
		case "linux":
			method = "mpris"
		case "windows":
			method = "winmedia"
		case "darwin":
			method = "macmedia"
		default:
			return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
		}
	}

	interval := mediastate.WithPollInterval(cfg.PollInterval())

	switch method {
	case "mpris":
		a, err := mpris.New()
		if err != nil {
			return nil, nil, fmt.Errorf("mpris: %w", err)
		}
		return mediastate.NewController(a, interval), nil, nil

	case "winmedia":
		a, err := winmedia.New()
		if err != nil {
			return nil, nil, fmt.Errorf("winmedia: %w", err)
		}
		return mediastate.NewController(a, interval), nil, nil

	case "macmedia":
		a, err := macmedia.New()
		if err != nil {
			return nil, nil, fmt.Errorf("macmedia: %w", err)
		}
		return mediastate.NewController(a, interval), nil, nil

	case "scrobble":
		a := scrobble.New()
		return mediastate.NewController(a), a, nil

	case "nightbot":
		client, err := nightbotClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		slow := mediastate.WithPollInterval(cfg.NightbotPollInterval())
		return mediastate.NewController(nightbot.NewAdapter(client), slow), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown media method %q", method)
	}
}

func nightbotClient(cfg config.Config) (*nightbot.Client, error) {
	nb := cfg.Nightbot
	if nb.ClientID == "" || nb.ClientSecret == "" || nb.RedirectURL == "" || nb.Token == "" {
		return nil, errors.New("nightbot method requires client_id, client_secret, redirect_url and token")
	}
	var token oauth2.Token
	if err := json.Unmarshal([]byte(nb.Token), &token); err != nil {
		return nil, fmt.Errorf("parsing nightbot token: %w", err)
	}
	return nightbot.NewClient(nb.ClientID, nb.ClientSecret, nb.RedirectURL, &token), nil
}
