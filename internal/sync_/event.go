package sync_

import "sync"

// Event is a one-way flag that goroutines can wait on.
type Event struct {
	mu    sync.Mutex
	ch    chan struct{}
	value bool
}

func NewEvent() *Event {
	return &Event{}
}

// IsSet returns the current state of the Event.
func (e *Event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

// Set makes the Event true, waking any waiters. Returns true if the state changed.
func (e *Event) Set() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.value {
		return false
	}
	e.value = true
	close(e.channel())
	return true
}

// Wait returns a channel that is closed once the Event is true (which may be immediately).
func (e *Event) Wait() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.channel()
}

// channel must be called with mu held.
func (e *Event) channel() chan struct{} {
	if e.ch == nil {
		e.ch = make(chan struct{})
	}
	return e.ch
}
