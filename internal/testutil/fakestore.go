// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"firetask/internal/service"
)

// FakeStore is an in-memory implementation of service.Store for testing.
// Mutations fan the full replacement snapshot out to live subscriptions
// synchronously, so tests observe deliveries deterministically.
type FakeStore struct {
	mu     sync.Mutex
	tasks  map[string][]service.Task // ownerID -> tasks in store order
	nextID int
	subs   []*fakeSub

	// Error injection for testing
	ListErr      error
	CreateErr    error
	UpdateErr    error
	DeleteErr    error
	SubscribeErr error

	// Call counters
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

type fakeSub struct {
	mu       sync.Mutex
	closed   bool
	ownerID  string
	onChange func([]service.Task)
	onError  func(error)
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{tasks: make(map[string][]service.Task)}
}

// AddTask seeds a task for ownerID and notifies subscribers. The id and
// creation time are assigned here, like the store would.
func (f *FakeStore) AddTask(ownerID string, t service.Task) service.Task {
	f.mu.Lock()
	f.nextID++
	t.ID = fmt.Sprintf("task-%d", f.nextID)
	t.OwnerID = ownerID
	t.CreatedAt = time.Now()
	f.tasks[ownerID] = append(f.tasks[ownerID], t)
	f.mu.Unlock()
	f.notify(ownerID)
	return t
}

// SnapshotOf returns a copy of the stored tasks for ownerID.
func (f *FakeStore) SnapshotOf(ownerID string) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked(ownerID)
}

func (f *FakeStore) snapshotLocked(ownerID string) []service.Task {
	out := make([]service.Task, len(f.tasks[ownerID]))
	copy(out, f.tasks[ownerID])
	return out
}

// List implements service.Store.
func (f *FakeStore) List(ctx context.Context, ownerID string) ([]service.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked(ownerID), nil
}

// Create implements service.Store.
func (f *FakeStore) Create(ctx context.Context, ownerID string, t service.Task) (service.Task, error) {
	f.mu.Lock()
	f.CreateCalls++
	f.mu.Unlock()
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	t.Completed = false
	return f.AddTask(ownerID, t), nil
}

// Update implements service.Store.
func (f *FakeStore) Update(ctx context.Context, id string, u service.TaskUpdate) error {
	f.mu.Lock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		f.mu.Unlock()
		return f.UpdateErr
	}

	var owner string
	found := false
	for ownerID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == id {
				f.tasks[ownerID][i] = applyUpdate(t, u)
				owner = ownerID
				found = true
			}
		}
	}
	f.mu.Unlock()

	if !found {
		return service.ErrNotFound
	}
	f.notify(owner)
	return nil
}

// Delete implements service.Store. Deleting an absent task is a no-op.
func (f *FakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	f.DeleteCalls++
	if f.DeleteErr != nil {
		f.mu.Unlock()
		return f.DeleteErr
	}

	var owner string
	found := false
	for ownerID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == id {
				f.tasks[ownerID] = append(tasks[:i], tasks[i+1:]...)
				owner = ownerID
				found = true
				break
			}
		}
	}
	f.mu.Unlock()

	if found {
		f.notify(owner)
	}
	return nil
}

// ToggleCompletion implements service.Store.
func (f *FakeStore) ToggleCompletion(ctx context.Context, t service.Task) error {
	completed := !t.Completed
	return f.Update(ctx, t.ID, service.TaskUpdate{Completed: &completed})
}

// Subscribe implements service.Store. The initial snapshot is delivered
// before Subscribe returns.
func (f *FakeStore) Subscribe(ctx context.Context, ownerID string, onChange func([]service.Task), onError func(error)) (service.CancelFunc, error) {
	if f.SubscribeErr != nil {
		return nil, f.SubscribeErr
	}

	sub := &fakeSub{ownerID: ownerID, onChange: onChange, onError: onError}
	f.mu.Lock()
	f.subs = append(f.subs, sub)
	snapshot := f.snapshotLocked(ownerID)
	f.mu.Unlock()

	sub.deliver(snapshot)
	return sub.cancel, nil
}

// FailSubscriptions invokes onError on every live subscription for ownerID.
func (f *FakeStore) FailSubscriptions(ownerID string, err error) {
	for _, sub := range f.subsFor(ownerID) {
		sub.fail(err)
	}
}

func (f *FakeStore) notify(ownerID string) {
	f.mu.Lock()
	snapshot := f.snapshotLocked(ownerID)
	f.mu.Unlock()
	for _, sub := range f.subsFor(ownerID) {
		sub.deliver(snapshot)
	}
}

func (f *FakeStore) subsFor(ownerID string) []*fakeSub {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*fakeSub
	for _, sub := range f.subs {
		if sub.ownerID == ownerID {
			out = append(out, sub)
		}
	}
	return out
}

func (s *fakeSub) deliver(tasks []service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onChange(tasks)
}

func (s *fakeSub) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onError(err)
}

func (s *fakeSub) cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func applyUpdate(t service.Task, u service.TaskUpdate) service.Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.DueDate != nil {
		t.DueDate = *u.DueDate
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Subtasks != nil {
		t.Subtasks = *u.Subtasks
	}
	return t
}
