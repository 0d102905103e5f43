package actions

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdle is how long a client's bucket is kept after its last action.
const limiterIdle = 10 * time.Minute

// Limiter rate limits actions per client with a token bucket each.
type Limiter struct {
	mu      sync.Mutex
	perMin  int
	idle    time.Duration
	clients map[string]*clientLimit
}

type clientLimit struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter allows perMinute actions per client; zero or less disables limiting.
func NewLimiter(perMinute int) *Limiter {
	return &Limiter{
		perMin:  perMinute,
		idle:    limiterIdle,
		clients: make(map[string]*clientLimit),
	}
}

// Allow reports whether the client may run another action now.
func (l *Limiter) Allow(clientID string) bool {
	if l == nil || l.perMin <= 0 {
		return true
	}
	now := time.Now()

	l.mu.Lock()
	c, ok := l.clients[clientID]
	if !ok {
		c = &clientLimit{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin),
		}
		l.clients[clientID] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Cleanup drops the buckets of clients idle for longer than the idle period.
// An idle bucket has refilled completely, so dropping it changes no decision.
func (l *Limiter) Cleanup() {
	if l == nil {
		return
	}
	cutoff := time.Now().Add(-l.idle)

	l.mu.Lock()
	defer l.mu.Unlock()
	for id, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, id)
		}
	}
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
