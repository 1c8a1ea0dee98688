package sessionstore

import (
	"context"
	"sync"
)

// Web is the session store for the web client environment. It holds only the
// user profile; tokens exist solely as HttpOnly cookies set by the BFF proxy
// and are invisible to this process.
type Web struct {
	mu   sync.Mutex
	user *User
}

// NewWeb creates a web session store.
func NewWeb() *Web {
	return &Web{}
}

// SetUser stores a copy of the profile, marking the session authenticated.
func (w *Web) SetUser(user *User) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.user = copyUser(user)
}

// User returns a copy of the current profile, or nil when unauthenticated.
func (w *Web) User() *User {
	w.mu.Lock()
	defer w.mu.Unlock()
	return copyUser(w.user)
}

// ClearUser removes the profile.
func (w *Web) ClearUser() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.user = nil
}

// Logout clears the user. Cookie destruction happens server-side at the BFF.
func (w *Web) Logout(ctx context.Context) {
	w.ClearUser()
}
