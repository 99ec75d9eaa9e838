// Package session holds the authenticated principal and its tokens. The
// session is an explicit value threaded into store calls, never read from
// ambient state.
package session

import (
	"context"
	"encoding/json"
	"os"

	"golang.org/x/oauth2"
)

// secureTokenURL is the token refresh endpoint for Identity Platform
// sessions. It speaks the standard refresh_token grant.
const secureTokenURL = "https://securetoken.googleapis.com/v1/token"

// Session is an authenticated principal. UserID is the access-scoping key
// for every store query. Token holds the ID token as the access token, plus
// the refresh token and expiry.
type Session struct {
	UserID string        `json:"user_id"`
	Email  string        `json:"email"`
	Token  *oauth2.Token `json:"token"`
}

// Load reads a session from path.
func Load(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Save writes the session to path with mode 0600.
func (s Session) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Clear removes the session file. Removing an absent file is not an error.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// TokenSource returns a source that refreshes the ID token against the
// secure-token endpoint when it expires.
func (s Session) TokenSource(ctx context.Context, apiKey string) oauth2.TokenSource {
	cfg := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  secureTokenURL + "?key=" + apiKey,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return cfg.TokenSource(ctx, s.Token)
}

// Valid reports whether the session can still produce a usable token,
// refreshing it if needed.
func (s Session) Valid(ctx context.Context, apiKey string) bool {
	if s.Token == nil || s.Token.RefreshToken == "" {
		return false
	}
	_, err := s.TokenSource(ctx, apiKey).Token()
	return err == nil
}
