package service

import (
	"fmt"
	"sync"
	"time"
)

// DefaultConfirmWindow is how long an armed delete stays armed.
const DefaultConfirmWindow = 15 * time.Second

// DeleteConfirmer implements the two-phase delete used by the admin list
// views: the first request for a row arms it, a second request for the same
// row inside the window commits. Arming a different row, expiry, or a
// session reset all drop back to idle.
type DeleteConfirmer struct {
	mu     sync.Mutex
	window time.Duration
	armed  map[string]armedDelete
	now    func() time.Time
}

type armedDelete struct {
	target  string
	armedAt time.Time
}

// NewDeleteConfirmer creates a confirmer. A non-positive window falls back
// to DefaultConfirmWindow.
func NewDeleteConfirmer(window time.Duration) *DeleteConfirmer {
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	return &DeleteConfirmer{
		window: window,
		armed:  make(map[string]armedDelete),
		now:    time.Now,
	}
}

// Confirm advances the state machine for one caller (keyed by session id).
// It returns true when the caller has confirmed the same target within the
// window and the delete should proceed; false means the target is now armed
// and the caller should be told to click again.
func (c *DeleteConfirmer) Confirm(sessionID, kind string, id uint) bool {
	target := fmt.Sprintf("%s/%d", kind, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	current, ok := c.armed[sessionID]
	if ok && current.target == target && now.Sub(current.armedAt) <= c.window {
		delete(c.armed, sessionID)
		return true
	}

	// Either nothing armed, a different row, or the window lapsed: (re)arm.
	c.armed[sessionID] = armedDelete{target: target, armedAt: now}
	return false
}

// Reset clears any armed state for the session, e.g. on navigation or logout.
func (c *DeleteConfirmer) Reset(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.armed, sessionID)
}
