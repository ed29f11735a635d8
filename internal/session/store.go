// Package session keeps the authenticated session in a single durable slot.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stockdesk/stockdesk/internal/models"
)

// DefaultSlot is the slot name used when none is configured.
const DefaultSlot = "auth"

// errSlotEmpty is returned by a slot that holds nothing.
var errSlotEmpty = errors.New("session slot empty")

// Store persists exactly one session.
type Store interface {
	// Load returns the stored session, or nil when there is none. Malformed
	// or expired content is cleared and reported as absent.
	Load() *models.Session
	// Save replaces the stored session.
	Save(sess *models.Session) error
	// Clear removes the stored session.
	Clear() error
	// Close releases backend resources.
	Close() error
}

// slot is the raw byte storage behind a Store.
type slot interface {
	read() ([]byte, error)
	write(data []byte) error
	remove() error
	close() error
	describe() string
}

// slotStore implements Store on top of any slot.
type slotStore struct {
	slot slot
	now  func() time.Time
}

func newSlotStore(s slot) *slotStore {
	return &slotStore{slot: s, now: time.Now}
}

func (s *slotStore) Load() *models.Session {
	data, err := s.slot.read()
	if errors.Is(err, errSlotEmpty) {
		return nil
	}
	if err != nil {
		slog.Warn("Reading session slot failed", "slot", s.slot.describe(), "error", err)
		return nil
	}

	sess, err := Decode(data)
	if err != nil {
		slog.Warn("Discarding malformed session", "slot", s.slot.describe(), "error", err)
		s.discard()
		return nil
	}

	if tokenExpired(sess.Token, s.now()) {
		slog.Info("Stored session token has expired", "user_id", sess.User.ID)
		s.discard()
		return nil
	}
	return sess
}

func (s *slotStore) Save(sess *models.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("refusing to save session without a valid user")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := s.slot.write(data); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (s *slotStore) Clear() error {
	if err := s.slot.remove(); err != nil && !errors.Is(err, errSlotEmpty) {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

func (s *slotStore) Close() error {
	return s.slot.close()
}

func (s *slotStore) discard() {
	if err := s.Clear(); err != nil {
		slog.Warn("Clearing session slot failed", "slot", s.slot.describe(), "error", err)
	}
}

// storedSession is the on-disk shape. access_token is accepted as an
// alias for token because some identity endpoints emit that name.
type storedSession struct {
	User        *models.User `json:"user"`
	Token       string       `json:"token"`
	AccessToken string       `json:"access_token"`
}

// Decode parses slot content into a session.
func Decode(data []byte) (*models.Session, error) {
	var raw storedSession
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if raw.User == nil {
		return nil, errors.New("session has no user")
	}
	sess := &models.Session{User: *raw.User, Token: raw.Token}
	if sess.Token == "" {
		sess.Token = raw.AccessToken
	}
	if !sess.Valid() {
		return nil, fmt.Errorf("session user %d has invalid role %q", sess.User.ID, sess.User.Role)
	}
	return sess, nil
}

// Open returns the Store for the named backend.
func Open(backend, dir, name string) (Store, error) {
	if name == "" {
		name = DefaultSlot
	}
	switch backend {
	case "", "file":
		return NewFileStore(dir, name), nil
	case "keyring":
		return NewKeyringStore(KeyringService, name), nil
	case "sqlite":
		return NewSQLiteStore(dir, name)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q: valid backends are file, keyring, sqlite, memory", backend)
	}
}
