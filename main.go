package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"mediastate/config"
	"mediastate/mediastate"
	"mediastate/platform"
	"mediastate/playlist"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// No origin means file:// or a native client.
		if origin == "" {
			return true
		}

		originURL, err := url.Parse(origin)
		if err != nil {
			logrus.Warnf("invalid origin %q: %v", origin, err)
			return false
		}

		if originURL.Host == r.Host {
			return true
		}

		if strings.HasPrefix(originURL.Host, "localhost:") ||
			strings.HasPrefix(originURL.Host, "127.0.0.1:") {
			return true
		}

		logrus.Warnf("rejected websocket connection from origin %q", origin)
		return false
	},
}

// stateUpdate is the wire frame pushed to every connected client.
type stateUpdate struct {
	Type  string            `json:"type"` // "change" or "stop"
	State *mediastate.State `json:"state,omitempty"`
}

// controlRequest is a command frame read from a client.
type controlRequest struct {
	Action   string `json:"action"`
	Playlist string `json:"playlist,omitempty"`
}

// controlReply acknowledges a controlRequest.
type controlReply struct {
	Type     string `json:"type"` // always "ack"
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}

type hub struct {
	ctrl        *mediastate.Controller
	playlistDir string

	mu    sync.RWMutex
	conns map[*websocket.Conn]*sync.Mutex // per-conn write lock
	last  stateUpdate
}

func newHub(ctrl *mediastate.Controller, playlistDir string) *hub {
	h := &hub{
		ctrl:        ctrl,
		playlistDir: playlistDir,
		conns:       make(map[*websocket.Conn]*sync.Mutex),
		last:        stateUpdate{Type: "stop"},
	}
	ctrl.OnChange(h.broadcast)
	return h
}

func (h *hub) broadcast(state mediastate.State) {
	update := stateUpdate{Type: "change", State: &state}
	if state.IsDefault() {
		update = stateUpdate{Type: "stop"}
	}

	h.mu.Lock()
	h.last = update
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.conns))
	for c, wl := range h.conns {
		conns[c] = wl
	}
	h.mu.Unlock()

	for conn, wl := range conns {
		wl.Lock()
		err := conn.WriteJSON(update)
		wl.Unlock()
		if err != nil {
			logrus.Debugf("dropping client after write error: %v", err)
			h.remove(conn)
		}
	}
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *hub) handleControl(req controlRequest) controlReply {
	reply := controlReply{Type: "ack", Action: req.Action}
	switch req.Action {
	case "play":
		reply.Accepted = h.ctrl.Play()
	case "pause":
		reply.Accepted = h.ctrl.Pause()
	case "stop":
		reply.Accepted = h.ctrl.Stop()
	case "next":
		reply.Accepted = h.ctrl.Next()
	case "previous":
		reply.Accepted = h.ctrl.Previous()
	case "startPlaylist":
		err := h.startPlaylist(req.Playlist)
		if err != nil {
			reply.Error = err.Error()
		}
		reply.Accepted = err == nil
	default:
		reply.Error = "unknown action"
	}
	return reply
}

func (h *hub) startPlaylist(name string) error {
	lists, err := playlist.Discover(h.playlistDir)
	if err != nil {
		return err
	}
	list, ok := playlist.Find(lists, name)
	if !ok {
		return os.ErrNotExist
	}
	return list.Start()
}

func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade: %v", err)
		return
	}

	writeLock := &sync.Mutex{}
	h.mu.Lock()
	h.conns[conn] = writeLock
	initial := h.last
	h.mu.Unlock()
	defer h.remove(conn)

	conn.SetReadLimit(1024)
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	// Ping on an interval so half-dead clients fail out of ReadJSON
	// instead of lingering in the broadcast set.
	pingDone := make(chan struct{})
	defer close(pingDone)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pingDone:
				return
			case <-ticker.C:
				writeLock.Lock()
				err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
				writeLock.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	writeLock.Lock()
	err = conn.WriteJSON(initial)
	writeLock.Unlock()
	if err != nil {
		logrus.Debugf("initial write: %v", err)
		return
	}

	for {
		var req controlRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				logrus.Debugf("websocket read: %v", err)
			}
			return
		}
		reply := h.handleControl(req)
		writeLock.Lock()
		err = conn.WriteJSON(reply)
		writeLock.Unlock()
		if err != nil {
			return
		}
	}
}

func (h *hub) servePlaylists(w http.ResponseWriter, r *http.Request) {
	lists, err := playlist.Discover(h.playlistDir)
	if err != nil {
		logrus.Warnf("playlist discovery: %v", err)
		lists = nil
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lists)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logrus.SetLevel(level)
	}

	ctrl, scrobbler, err := platform.Select(cfg)
	if err != nil {
		logrus.Fatalf("selecting media source: %v", err)
	}
	defer ctrl.Cleanup()

	h := newHub(ctrl, cfg.Playlists.Dir)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/playlists", h.servePlaylists)
	if scrobbler != nil {
		mux.Handle("/scrobble", scrobbler)
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: mux,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		sig := <-sigChan
		logrus.Infof("received signal %v, shutting down", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logrus.Warnf("server shutdown: %v", err)
		}
	}()

	logrus.Infof("listening on %s", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.Fatalf("serving: %v", err)
	}
	logrus.Info("shutdown complete")
}
