// Package session owns the authenticated identity for the lifetime of a
// browser session. It is the only cross-page mutable state in the portal:
// written by login and logout, read by every page that needs role or
// identity. All reads go through the store, never through ad hoc cookie
// parsing, so a logout invalidates every dependent view at once.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odontoweb/portal/internal/platform/roles"
)

// Session mirrors the identity issued by the clinic backend on login.
type Session struct {
	Email  string        `json:"email"`
	Role   roles.RoleTag `json:"-"`
	UserID int64         `json:"userId"`
	Token  string        `json:"-"`
}

// EventType distinguishes store notifications.
type EventType int

const (
	EventSet EventType = iota
	EventCleared
)

// Event is delivered to subscribers on every store mutation.
type Event struct {
	Type EventType
	SID  string
}

type entry struct {
	sess      Session
	expiresAt time.Time
}

// Store maps session ids to sessions with TTL expiry and notifies
// subscribers on every mutation.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	subs    []func(Event)
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Create registers a new session and returns its id.
func (s *Store) Create(sess Session) string {
	sid := uuid.New().String()
	s.mu.Lock()
	s.entries[sid] = entry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	s.notify(Event{Type: EventSet, SID: sid})
	return sid
}

// Get returns the session for sid, or false when absent or expired.
// Expired entries are removed on access and reported as a clear so
// subscribers see the implicit logout.
func (s *Store) Get(sid string) (Session, bool) {
	s.mu.RLock()
	e, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if time.Now().After(e.expiresAt) {
		s.Clear(sid)
		return Session{}, false
	}
	return e.sess, true
}

// Clear removes the session. Clearing an unknown id is a no-op.
func (s *Store) Clear(sid string) {
	s.mu.Lock()
	_, ok := s.entries[sid]
	delete(s.entries, sid)
	s.mu.Unlock()
	if ok {
		s.notify(Event{Type: EventCleared, SID: sid})
	}
}

// Subscribe registers fn to run on every Set and Clear. Subscribers are
// invoked synchronously and must not call back into the store.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
