// Package identity implements the service.Identity interface on the
// Identity Toolkit API (email+password credentials only).
package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v1"
	"google.golang.org/api/option"

	"firetask/internal/config"
	"firetask/internal/service"
	"firetask/internal/session"
)

// APITimeout is the timeout for identity calls.
const APITimeout = 10 * time.Second

// defaultTokenTTL is used when the provider omits the token lifetime.
const defaultTokenTTL = time.Hour

// Client implements service.Identity using the Identity Toolkit API.
type Client struct {
	svc *identitytoolkit.Service
	cfg *config.Config
}

// New creates a new identity client. The API key identifies the Identity
// Platform project; no other credentials are needed for sign-in.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.Settings.APIKey == "" {
		return nil, fmt.Errorf("api_key not configured (set it in %s)", cfg.SettingsPath())
	}
	svc, err := identitytoolkit.NewService(ctx,
		option.WithAPIKey(cfg.Settings.APIKey),
		option.WithoutAuthentication(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity service: %w", err)
	}
	return &Client{svc: svc, cfg: cfg}, nil
}

// SignIn authenticates an email+password pair and returns the session.
// Failures are surfaced verbatim, mapped to the service error taxonomy; no
// retries.
func (c *Client) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := c.svc.Accounts.SignInWithPassword(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return session.Session{}, wrapError(err)
	}
	return newSession(resp.LocalId, resp.Email, resp.IdToken, resp.RefreshToken, strconv.FormatInt(resp.ExpiresIn, 10)), nil
}

// SignUp creates a new principal and returns its session.
func (c *Client) SignUp(ctx context.Context, email, password string) (session.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	resp, err := c.svc.Accounts.SignUp(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignUpRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return session.Session{}, wrapError(err)
	}
	return newSession(resp.LocalId, resp.Email, resp.IdToken, resp.RefreshToken, strconv.FormatInt(resp.ExpiresIn, 10)), nil
}

// SignOut clears the local session. Signing out twice is a no-op.
func (c *Client) SignOut() error {
	return session.Clear(c.cfg.SessionPath())
}

// CurrentPrincipal returns the stored session, or false if none exists.
func (c *Client) CurrentPrincipal() (session.Session, bool) {
	s, err := session.Load(c.cfg.SessionPath())
	if err != nil {
		return session.Session{}, false
	}
	return s, true
}

func newSession(userID, email, idToken, refreshToken, expiresIn string) session.Session {
	ttl := defaultTokenTTL
	if secs, err := strconv.ParseInt(expiresIn, 10, 64); err == nil && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}
	return session.Session{
		UserID: userID,
		Email:  email,
		Token: &oauth2.Token{
			AccessToken:  idToken,
			TokenType:    "Bearer",
			RefreshToken: refreshToken,
			Expiry:       time.Now().Add(ttl),
		},
	}
}

// wrapError maps provider rejection codes onto the service taxonomy.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		msg := ge.Message
		switch {
		case strings.Contains(msg, "EMAIL_EXISTS"):
			return fmt.Errorf("%w: %s", service.ErrEmailInUse, msg)
		case strings.Contains(msg, "WEAK_PASSWORD"):
			return fmt.Errorf("%w: %s", service.ErrWeakPassword, msg)
		case strings.Contains(msg, "EMAIL_NOT_FOUND"),
			strings.Contains(msg, "INVALID_PASSWORD"),
			strings.Contains(msg, "INVALID_LOGIN_CREDENTIALS"),
			strings.Contains(msg, "USER_DISABLED"):
			return fmt.Errorf("%w: %s", service.ErrInvalidCredentials, msg)
		}
	}
	return fmt.Errorf("auth request failed: %w", err)
}
