// Package nightbot reads the Nightbot song-request queue as a remote
// media session.
package nightbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var log = logrus.WithField("component", "nightbot")

const (
	// DefaultAPIBase is the base URL for the Nightbot API.
	DefaultAPIBase = "https://api.nightbot.tv/1"
	// DefaultTimeout bounds each API request.
	DefaultTimeout = 10 * time.Second
)

// Endpoint is Nightbot's OAuth2 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://api.nightbot.tv/oauth2/authorize",
	TokenURL: "https://api.nightbot.tv/oauth2/token",
}

// Scopes required to read the song-request queue.
var Scopes = []string{"song_requests_queue"}

// ErrNoCurrentSong is returned when the queue has no active song.
var ErrNoCurrentSong = errors.New("no current song playing")

// NowPlaying is the queue's current track.
type NowPlaying struct {
	Artist    string
	Title     string
	Requester string
}

// SongRequestQueue mirrors the queue endpoint response.
type SongRequestQueue struct {
	CurrentSong *SongRequest  `json:"_currentSong"`
	Queue       []SongRequest `json:"_queue"`
}

// SongRequest is one queued song.
type SongRequest struct {
	Track Track `json:"track"`
	User  User  `json:"user"`
}

// Track is the song portion of a request.
type Track struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Duration   int    `json:"duration"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	URL        string `json:"url"`
}

// User is the requesting viewer.
type User struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	UserID   string `json:"_id"`
}

// Client is a Nightbot API client.
type Client struct {
	httpClient *http.Client
	config     *oauth2.Config
	token      *oauth2.Token

	// APIBase can be overridden for tests.
	APIBase string
}

// NewClient builds a client around the given OAuth2 credentials.
func NewClient(clientID, clientSecret, redirectURL string, token *oauth2.Token) *Client {
	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     Endpoint,
		Scopes:       Scopes,
	}

	return &Client{
		httpClient: config.Client(context.Background(), token),
		config:     config,
		token:      token,
		APIBase:    DefaultAPIBase,
	}
}

// GetCurrentSong returns the queue's current track, or ErrNoCurrentSong
// when nothing is queued up.
func (c *Client) GetCurrentSong() (*NowPlaying, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBase+"/song_requests/queue", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, body)
	}

	var queue SongRequestQueue
	if err := json.NewDecoder(resp.Body).Decode(&queue); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if queue.CurrentSong == nil {
		return nil, ErrNoCurrentSong
	}

	return &NowPlaying{
		Artist:    queue.CurrentSong.Track.Artist,
		Title:     queue.CurrentSong.Track.Title,
		Requester: queue.CurrentSong.User.Name,
	}, nil
}

// RefreshToken refreshes the OAuth token if it has expired.
func (c *Client) RefreshToken() error {
	if c.token == nil {
		return errors.New("no token available")
	}
	if c.token.Valid() {
		return nil
	}

	log.Debug("token expired, refreshing")
	newToken, err := c.config.TokenSource(context.Background(), c.token).Token()
	if err != nil {
		return fmt.Errorf("refreshing token: %w", err)
	}

	c.token = newToken
	c.httpClient = c.config.Client(context.Background(), newToken)
	return nil
}
