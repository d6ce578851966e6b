package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"mediastate/nightbot"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Printf("Usage: %s <client_id> <client_secret> <redirect_url>\n", os.Args[0])
		os.Exit(1)
	}

	clientID := os.Args[1]
	clientSecret := os.Args[2]
	redirectURL := os.Args[3]

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     nightbot.Endpoint,
		Scopes:       nightbot.Scopes,
	}

	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("Visit the URL for the auth dialog: %v\n", authURL)

	// The redirect URL doubles as the local callback listener.
	redirectParts := strings.Split(strings.TrimPrefix(redirectURL, "http://"), ":")
	if len(redirectParts) != 2 {
		logrus.Fatal("redirect URL should be http://hostname:port (example: http://localhost:9182)")
	}
	listenAddr := ":" + redirectParts[1]

	tokenChan := make(chan *oauth2.Token)
	server := &http.Server{Addr: listenAddr}
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Code not found", http.StatusBadRequest)
			return
		}

		token, err := config.Exchange(r.Context(), code)
		if err != nil {
			http.Error(w, fmt.Sprintf("Token exchange error: %v", err), http.StatusInternalServerError)
			return
		}

		tokenChan <- token

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "<h1>Authentication Successful!</h1><p>You can close this window now.</p>")
	})

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	token := <-tokenChan

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(ctx)

	tokenJSON, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		logrus.Fatalf("marshaling token: %v", err)
	}

	fmt.Println("\nToken received! Please set the following environment variables:")
	fmt.Printf("MEDIASTATE_NIGHTBOT_CLIENT_ID=%s\n", clientID)
	fmt.Printf("MEDIASTATE_NIGHTBOT_CLIENT_SECRET=%s\n", clientSecret)
	fmt.Printf("MEDIASTATE_NIGHTBOT_REDIRECT_URL=%s\n", redirectURL)
	fmt.Printf("MEDIASTATE_NIGHTBOT_TOKEN=%s\n", string(tokenJSON))
}
