// Package notify implements the transient notification queue surfaced as
// toasts in the TUI and as log lines in the CLI. Entries expire independently
// after their TTL or can be dismissed by ID; neither affects its neighbors.
package notify

import (
	"sync"
	"time"

	"github.com/desertthunder/tubecli/internal/shared"
)

// Kind classifies a notification for presentation.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// DefaultTTL is how long a toast stays visible unless dismissed.
const DefaultTTL = 3 * time.Second

// Toast is one queued notification.
type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
	TTL       time.Duration
}

// ExpiresAt returns the instant this toast should disappear.
func (t Toast) ExpiresAt() time.Time {
	return t.CreatedAt.Add(t.TTL)
}

// Queue holds active toasts in arrival order.
type Queue struct {
	mu     sync.Mutex
	toasts []Toast
	now    func() time.Time
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{now: time.Now}
}

// Push appends a notification with the default TTL and returns it.
func (q *Queue) Push(message string, kind Kind) Toast {
	return q.PushTTL(message, kind, DefaultTTL)
}

// PushTTL appends a notification with an explicit TTL.
func (q *Queue) PushTTL(message string, kind Kind, ttl time.Duration) Toast {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	toast := Toast{
		ID:        shared.GenerateID(),
		Message:   message,
		Kind:      kind,
		CreatedAt: q.now(),
		TTL:       ttl,
	}

	q.mu.Lock()
	q.toasts = append(q.toasts, toast)
	q.mu.Unlock()
	return toast
}

// Dismiss removes the toast with the given ID. Unknown IDs are a no-op;
// a toast may have expired between render and keypress.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.toasts {
		if t.ID == id {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}

// Expire removes every toast whose TTL has elapsed and returns them.
func (q *Queue) Expire() []Toast {
	now := q.now()

	q.mu.Lock()
	defer q.mu.Unlock()

	var expired []Toast
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if now.Before(t.ExpiresAt()) {
			kept = append(kept, t)
		} else {
			expired = append(expired, t)
		}
	}
	q.toasts = kept
	return expired
}

// Active returns the live toasts in arrival order.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Len returns the number of live toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}
