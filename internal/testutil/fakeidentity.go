package testutil

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"firetask/internal/service"
	"firetask/internal/session"
)

// FakeIdentity is an in-memory implementation of service.Identity for
// testing. Accounts are email -> password.
type FakeIdentity struct {
	mu       sync.Mutex
	accounts map[string]string
	current  *session.Session
	nextUID  int

	// Error injection for testing
	SignInErr error
	SignUpErr error
}

// NewFakeIdentity creates a FakeIdentity with no accounts.
func NewFakeIdentity() *FakeIdentity {
	return &FakeIdentity{accounts: make(map[string]string)}
}

// AddAccount registers an email+password pair.
func (f *FakeIdentity) AddAccount(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[email] = password
}

// SignIn implements service.Identity.
func (f *FakeIdentity) SignIn(ctx context.Context, email, password string) (session.Session, error) {
	if f.SignInErr != nil {
		return session.Session{}, f.SignInErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.accounts[email]
	if !ok || stored != password {
		return session.Session{}, service.ErrInvalidCredentials
	}
	sess := f.newSessionLocked(email)
	f.current = &sess
	return sess, nil
}

// SignUp implements service.Identity.
func (f *FakeIdentity) SignUp(ctx context.Context, email, password string) (session.Session, error) {
	if f.SignUpErr != nil {
		return session.Session{}, f.SignUpErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.accounts[email]; exists {
		return session.Session{}, service.ErrEmailInUse
	}
	if len(password) < 6 {
		return session.Session{}, service.ErrWeakPassword
	}
	f.accounts[email] = password
	sess := f.newSessionLocked(email)
	f.current = &sess
	return sess, nil
}

// SignOut implements service.Identity. Idempotent.
func (f *FakeIdentity) SignOut() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
	return nil
}

// CurrentPrincipal implements service.Identity.
func (f *FakeIdentity) CurrentPrincipal() (session.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return session.Session{}, false
	}
	return *f.current, true
}

func (f *FakeIdentity) newSessionLocked(email string) session.Session {
	f.nextUID++
	return session.Session{
		UserID: fmt.Sprintf("uid-%d", f.nextUID),
		Email:  email,
		Token: &oauth2.Token{
			AccessToken:  fmt.Sprintf("id-token-%d", f.nextUID),
			RefreshToken: fmt.Sprintf("refresh-%d", f.nextUID),
		},
	}
}
