package firestore

import (
	"sync"

	"firetask/internal/service"
)

// subscription guards callback delivery against cancellation. Callbacks run
// under the mutex, so once close returns no further invocation can start.
type subscription struct {
	mu       sync.Mutex
	closed   bool
	onChange func([]service.Task)
	onError  func(error)
}

func newSubscription(onChange func([]service.Task), onError func(error)) *subscription {
	return &subscription{onChange: onChange, onError: onError}
}

func (s *subscription) deliver(tasks []service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onChange(tasks)
}

func (s *subscription) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.onError(err)
}

func (s *subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
