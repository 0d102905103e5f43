// Package toast delivers short-lived on-screen confirmations.
package toast

import (
	"context"
	"log"
	"sync"
	"time"
)

// Toast is one confirmation message.
type Toast struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Toaster displays a toast to the client bound to ctx.
type Toaster interface {
	Show(ctx context.Context, t Toast) error
}

type clientKey struct{}

// WithClient binds a client id to ctx so toasts reach that client.
func WithClient(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientKey{}, clientID)
}

// ClientFromContext returns the bound client id, or "".
func ClientFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(clientKey{}).(string); ok {
		return v
	}
	return ""
}

// Queue holds pending toasts per client until the next page render drains them.
type Queue struct {
	mu      sync.Mutex
	pending map[string][]Toast
	max     int
	ttl     time.Duration
}

// NewQueue creates a queue keeping at most max toasts per client, each for ttl.
func NewQueue(max int, ttl time.Duration) *Queue {
	if max <= 0 {
		max = 5
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Queue{
		pending: make(map[string][]Toast),
		max:     max,
		ttl:     ttl,
	}
}

// Show queues t for the client bound to ctx. Toasts without a client are dropped.
func (q *Queue) Show(ctx context.Context, t Toast) error {
	id := ClientFromContext(ctx)
	if id == "" {
		return nil
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	list := append(q.pending[id], t)
	if len(list) > q.max {
		list = list[len(list)-q.max:]
	}
	q.pending[id] = list
	return nil
}

// Drain returns and clears the unexpired toasts of a client, oldest first.
func (q *Queue) Drain(clientID string) []Toast {
	q.mu.Lock()
	list := q.pending[clientID]
	delete(q.pending, clientID)
	q.mu.Unlock()

	cutoff := time.Now().Add(-q.ttl)
	out := make([]Toast, 0, len(list))
	for _, t := range list {
		if t.CreatedAt.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// Cleanup drops expired toasts and forgets clients with none left.
func (q *Queue) Cleanup() {
	cutoff := time.Now().Add(-q.ttl)

	q.mu.Lock()
	defer q.mu.Unlock()
	for id, list := range q.pending {
		kept := list[:0]
		for _, t := range list {
			if t.CreatedAt.After(cutoff) {
				kept = append(kept, t)
			}
		}
		if len(kept) == 0 {
			delete(q.pending, id)
		} else {
			q.pending[id] = kept
		}
	}
}

// Len returns the number of clients with pending toasts.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Logged wraps a Toaster and logs every toast.
type Logged struct {
	Next Toaster
}

func (l Logged) Show(ctx context.Context, t Toast) error {
	log.Printf("toast [%s] %s: %s", ClientFromContext(ctx), t.Title, t.Description)
	if l.Next == nil {
		return nil
	}
	return l.Next.Show(ctx, t)
}
