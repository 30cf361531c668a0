package feedback

import "sync"

// FlashType mirrors the toast variants.
type FlashType string

const (
	FlashSuccess FlashType = "success"
	FlashError   FlashType = "error"
	FlashInfo    FlashType = "info"
)

// Flash is one transient notification.
type Flash struct {
	Type    FlashType `json:"type"`
	Message string    `json:"message"`
}

// Notifier queues flashes per session. A flash is delivered exactly once:
// the next page render drains the queue.
type Notifier struct {
	mu        sync.Mutex
	bySession map[string][]Flash
}

func NewNotifier() *Notifier {
	return &Notifier{bySession: make(map[string][]Flash)}
}

// Push queues a flash. An empty message renders nothing, so it is dropped.
func (n *Notifier) Push(sid string, typ FlashType, message string) {
	if message == "" {
		return
	}
	n.mu.Lock()
	n.bySession[sid] = append(n.bySession[sid], Flash{Type: typ, Message: message})
	n.mu.Unlock()
}

// Pop drains and returns the session's pending flashes.
func (n *Notifier) Pop(sid string) []Flash {
	n.mu.Lock()
	defer n.mu.Unlock()
	flashes := n.bySession[sid]
	delete(n.bySession, sid)
	return flashes
}

// DropSession discards pending flashes, used on logout.
func (n *Notifier) DropSession(sid string) {
	n.mu.Lock()
	delete(n.bySession, sid)
	n.mu.Unlock()
}
