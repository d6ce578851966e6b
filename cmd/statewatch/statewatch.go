// statewatch is a terminal smoke tool: it attaches to the configured
// media source and prints every state change until interrupted. An
// optional -command flag sends one transport command after attach.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"mediastate/config"
	"mediastate/mediastate"
	"mediastate/platform"
)

func main() {
	method := flag.String("method", "", "override the configured source method (mpris, winmedia, macmedia, scrobble, nightbot)")
	command := flag.String("command", "", "send one command after attaching (play, pause, stop, next, previous)")
	flag.Parse()

	logrus.SetLevel(logrus.DebugLevel)

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}
	if *method != "" {
		cfg.Method = *method
	}

	ctrl, _, err := platform.Select(cfg)
	if err != nil {
		logrus.Fatalf("selecting media source: %v", err)
	}
	defer ctrl.Cleanup()

	ctrl.OnChange(func(state mediastate.State) {
		out, err := json.Marshal(state)
		if err != nil {
			logrus.Warnf("encoding state: %v", err)
			return
		}
		fmt.Println(string(out))
	})

	if *command != "" {
		// Give the worker a moment to attach before commanding.
		time.Sleep(2 * cfg.PollInterval())
		var accepted bool
		switch *command {
		case "play":
			accepted = ctrl.Play()
		case "pause":
			accepted = ctrl.Pause()
		case "stop":
			accepted = ctrl.Stop()
		case "next":
			accepted = ctrl.Next()
		case "previous":
			accepted = ctrl.Previous()
		default:
			logrus.Fatalf("unknown command %q", *command)
		}
		logrus.Infof("command %s accepted=%v", *command, accepted)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
}
