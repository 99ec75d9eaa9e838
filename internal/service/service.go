// Package service defines the backend-agnostic model and interfaces for task
// operations.
package service

import (
	"context"

	"firetask/internal/session"
)

// CancelFunc detaches a live subscription. After it returns, no further
// callback invocations happen. Safe to call more than once.
type CancelFunc func()

// Store defines the interface for the task document backend.
// All Firestore calls go through this interface; commands never import the
// SDK directly.
type Store interface {
	// Subscribe establishes a live query scoped to ownerID. onChange receives
	// the full current snapshot of that principal's tasks on every observed
	// change; the initial load counts as one change. onError is invoked on
	// transport or permission failure, after which the feed stops. The
	// returned handle detaches the subscription.
	Subscribe(ctx context.Context, ownerID string, onChange func([]Task), onError func(error)) (CancelFunc, error)

	// List returns a one-shot snapshot of the principal's tasks in store
	// order.
	List(ctx context.Context, ownerID string) ([]Task, error)

	// Create persists a new task scoped to ownerID. The store assigns the id
	// and the creation timestamp. Returns the task with its id set.
	Create(ctx context.Context, ownerID string, t Task) (Task, error)

	// Update merges the set fields of u into the stored document.
	// Fails with ErrNotFound if the document no longer exists.
	Update(ctx context.Context, id string, u TaskUpdate) error

	// Delete removes the document. Deleting an absent document is a no-op.
	Delete(ctx context.Context, id string) error

	// ToggleCompletion flips the completed flag of t.
	ToggleCompletion(ctx context.Context, t Task) error
}

// Identity defines the interface for the identity provider.
type Identity interface {
	// SignIn authenticates an email+password pair.
	// Fails with ErrInvalidCredentials when the provider rejects the pair.
	SignIn(ctx context.Context, email, password string) (session.Session, error)

	// SignUp creates a new principal.
	// Fails with ErrEmailInUse or ErrWeakPassword per provider validation.
	SignUp(ctx context.Context, email, password string) (session.Session, error)

	// SignOut clears the local session. Idempotent.
	SignOut() error

	// CurrentPrincipal returns the active session, or false if none.
	CurrentPrincipal() (session.Session, bool)
}
