package uistate

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/powerconnect/internal/models"
	"github.com/good-yellow-bee/powerconnect/internal/notifications"
)

// Client is the UI state of one browser.
type Client struct {
	ID                    string
	ExpandedOutages       Set
	ExpandedNotifications Set
	SelectedFeeder        string
	NotificationSettings  Toggles
	UserSettings          Toggles
	Query                 notifications.Query
	CreatedAt             time.Time
	ExpiresAt             time.Time
}

// Settings returns the toggles for a settings group.
func (c Client) Settings(group models.SettingGroup) Toggles {
	if group == models.GroupUser {
		return c.UserSettings
	}
	return c.NotificationSettings
}

// WithSettings returns a copy with the group's toggles replaced.
func (c Client) WithSettings(group models.SettingGroup, t Toggles) Client {
	if group == models.GroupUser {
		c.UserSettings = t
	} else {
		c.NotificationSettings = t
	}
	return c
}

// Store keeps client state in memory with a sliding TTL.
type Store struct {
	mu      sync.RWMutex
	clients map[string]Client
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewStore creates a store and starts its cleanup loop.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		clients: make(map[string]Client),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// Create registers a fresh client with default state.
func (s *Store) Create() Client {
	now := time.Now()
	c := Client{
		ID:                    uuid.New().String(),
		ExpandedOutages:       NewSet(),
		ExpandedNotifications: NewSet(),
		NotificationSettings:  NewToggles(models.DefaultSettings(models.GroupNotification)),
		UserSettings:          NewToggles(models.DefaultSettings(models.GroupUser)),
		Query:                 notifications.DefaultQuery(),
		CreatedAt:             now,
		ExpiresAt:             now.Add(s.ttl),
	}

	s.mu.Lock()
	s.clients[c.ID] = c
	s.mu.Unlock()

	return c
}

// Get returns the client state for id, if present and not expired.
func (s *Store) Get(id string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok || time.Now().After(c.ExpiresAt) {
		return Client{}, false
	}
	return c, true
}

// Update replaces the client state with fn's result and extends its TTL.
// Returns false if the client is unknown or expired.
func (s *Store) Update(id string, fn func(Client) Client) (Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok || time.Now().After(c.ExpiresAt) {
		return Client{}, false
	}
	next := fn(c)
	next.ID = c.ID
	next.CreatedAt = c.CreatedAt
	next.ExpiresAt = time.Now().Add(s.ttl)
	s.clients[id] = next
	return next, true
}

// Delete removes a client.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
}

// Len returns the number of tracked clients.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close stops the cleanup loop.
func (s *Store) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Store) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *Store) evictExpired() {
	now := time.Now()
	s.mu.Lock()
	for id, c := range s.clients {
		if now.After(c.ExpiresAt) {
			delete(s.clients, id)
		}
	}
	s.mu.Unlock()
}
