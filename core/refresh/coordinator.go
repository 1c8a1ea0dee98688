package refresh

import (
	"context"
	"sync"
)

// Callback performs the actual refresh. Environment-specific: the native
// variant posts the stored refresh token, the web variant relies on cookies.
type Callback func(ctx context.Context) error

// flight is one in-progress refresh shared by all concurrent triggers.
// ok is written before done is closed, so readers observing the close see
// the final value.
type flight struct {
	done chan struct{}
	ok   bool
}

// Coordinator de-duplicates concurrent refresh attempts into a single
// network call. Safe for concurrent use.
type Coordinator struct {
	mu       sync.Mutex
	callback Callback
	inflight *flight
}

// NewCoordinator creates an idle coordinator with no callback registered.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// SetCallback registers the function that performs the refresh. Replaces any
// previously registered callback.
func (c *Coordinator) SetCallback(callback Callback) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callback = callback
}

// Trigger requests a refresh and reports whether it succeeded.
//
// With no callback registered it returns false immediately. If a refresh is
// already in flight the caller joins it and observes the same outcome
// instead of starting a second one. Otherwise this caller runs the callback;
// once it completes, the in-flight marker is cleared so a later trigger
// starts a fresh refresh.
//
// The callback's error is never re-raised: callers only see the boolean.
// A caller whose context is cancelled while waiting on someone else's flight
// gets false; the flight itself keeps running for the remaining waiters.
func (c *Coordinator) Trigger(ctx context.Context) bool {
	c.mu.Lock()
	callback := c.callback
	if callback == nil {
		c.mu.Unlock()
		return false
	}

	if f := c.inflight; f != nil {
		c.mu.Unlock()
		select {
		case <-f.done:
			return f.ok
		case <-ctx.Done():
			return false
		}
	}

	f := &flight{done: make(chan struct{})}
	c.inflight = f
	c.mu.Unlock()

	f.ok = callback(ctx) == nil

	c.mu.Lock()
	if c.inflight == f {
		c.inflight = nil
	}
	c.mu.Unlock()

	close(f.done)
	return f.ok
}

// Reset clears the registered callback and detaches any in-flight refresh.
// Called on logout: the running flight still completes for its waiters, but
// no new trigger can refresh a session that no longer exists.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callback = nil
	c.inflight = nil
}
