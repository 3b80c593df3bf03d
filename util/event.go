package util

import (
	"sync"
)

// Event is a one-shot signal. Once notified it stays notified.
type Event struct {
	once sync.Once
	c    chan struct{}
}

func NewEvent() *Event {
	return &Event{
		c: make(chan struct{}),
	}
}

// Notify fires the event. Extra calls are no-ops.
func (e *Event) Notify() {
	e.once.Do(func() { close(e.c) })
}

// Wait blocks until Notify has been called.
func (e *Event) Wait() {
	<-e.c
}

// Done returns a channel that is closed when the event fires, for use in
// select statements.
func (e *Event) Done() <-chan struct{} {
	return e.c
}

func (e *Event) HasBeenNotified() bool {
	select {
	case <-e.c:
		return true
	default:
		return false
	}
}
