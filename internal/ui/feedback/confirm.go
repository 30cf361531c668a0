// Package feedback carries the portal's confirmation and notification
// widgets. Destructive actions are two-step: the page opens a confirm
// intent (the modal), and only confirming that intent triggers the mutating
// call. Notifications are one-shot flashes drained by the next page render.
package feedback

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIntentNotFound   = errors.New("confirmação expirada ou inexistente")
	ErrIntentProcessing = errors.New("ação já está em processamento")
)

// Intent is one pending confirmation: what would happen if the user
// confirms, bound to the session that opened it.
type Intent struct {
	Token       string `json:"token"`
	SID         string `json:"-"`
	Action      string `json:"action"`
	TargetID    int64  `json:"targetId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	processing bool
	createdAt  time.Time
}

// Confirmations tracks open intents. An intent is confirmed at most once:
// while it is processing, further confirms are rejected, which is what keeps
// a double-clicked Confirm button from firing two deletions.
type Confirmations struct {
	mu      sync.Mutex
	intents map[string]*Intent
	ttl     time.Duration
}

func NewConfirmations(ttl time.Duration) *Confirmations {
	return &Confirmations{
		intents: make(map[string]*Intent),
		ttl:     ttl,
	}
}

// Open registers a new intent for the given session and returns it.
func (c *Confirmations) Open(sid, action string, targetID int64, title, description string) *Intent {
	in := &Intent{
		Token:       uuid.New().String(),
		SID:         sid,
		Action:      action,
		TargetID:    targetID,
		Title:       title,
		Description: description,
		createdAt:   time.Now(),
	}
	c.mu.Lock()
	c.intents[in.Token] = in
	c.mu.Unlock()
	return in
}

// Begin marks the intent as processing and returns it. It fails when the
// token is unknown, expired, owned by another session, or already in flight.
func (c *Confirmations) Begin(sid, token string) (*Intent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	in, ok := c.intents[token]
	if !ok || in.SID != sid {
		return nil, ErrIntentNotFound
	}
	if time.Since(in.createdAt) > c.ttl {
		delete(c.intents, token)
		return nil, ErrIntentNotFound
	}
	if in.processing {
		return nil, ErrIntentProcessing
	}
	in.processing = true
	return in, nil
}

// Finish consumes the intent after the action completed, successfully or
// not. The modal closes either way.
func (c *Confirmations) Finish(token string) {
	c.mu.Lock()
	delete(c.intents, token)
	c.mu.Unlock()
}

// Cancel discards an intent without running its action.
func (c *Confirmations) Cancel(sid, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if in, ok := c.intents[token]; ok && in.SID == sid && !in.processing {
		delete(c.intents, token)
	}
}

// DropSession discards every intent of a session, used on logout.
func (c *Confirmations) DropSession(sid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for token, in := range c.intents {
		if in.SID == sid {
			delete(c.intents, token)
		}
	}
}
