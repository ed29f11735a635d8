package session

import (
	"sync"

	"github.com/stockdesk/stockdesk/internal/models"
)

// Holder is the process-wide access point to the session. Every read goes
// back to the Store so that a slot cleared or corrupted by another process
// is seen on the next call. Writes are serialized.
type Holder struct {
	mu    sync.Mutex
	store Store
}

// NewHolder wraps store.
func NewHolder(store Store) *Holder {
	return &Holder{store: store}
}

// Current returns a copy of the live session, or nil when logged out.
func (h *Holder) Current() *models.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Load()
}

// Set persists sess as the live session.
func (h *Holder) Set(sess *models.Session) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Save(sess)
}

// Clear removes the live session.
func (h *Holder) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Clear()
}

// ClearIfToken clears the session only while it still carries token, and
// reports whether it did. A 401 for a request sent with an older token, or
// a second 401 racing the first, leaves the current slot alone.
func (h *Holder) ClearIfToken(token string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cur := h.store.Load()
	if cur == nil || cur.Token != token {
		return false, nil
	}
	if err := h.store.Clear(); err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the underlying Store.
func (h *Holder) Close() error {
	return h.store.Close()
}
