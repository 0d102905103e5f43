package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/models"
)

// MemoryStorage keeps sample records in process memory. Last write wins.
type MemoryStorage struct {
	mu            sync.RWMutex
	outages       []*models.Outage
	notifications []*models.Notification
	loaded        bool
	loadedAt      time.Time
}

// NewMemoryStorage creates an empty store. Call Load before serving.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load(outages []*models.Outage, notifications []*models.Notification) {
	o := make([]*models.Outage, len(outages))
	for i, rec := range outages {
		o[i] = rec.Clone()
	}
	n := make([]*models.Notification, len(notifications))
	for i, rec := range notifications {
		c := *rec
		n[i] = &c
	}

	s.mu.Lock()
	s.outages = o
	s.notifications = n
	s.loaded = true
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// LoadedAt returns when data was last loaded.
func (s *MemoryStorage) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return errors.New("sample data not loaded")
	}
	return nil
}

func (s *MemoryStorage) Outages() OutageRepository {
	return &outageRepo{s: s}
}

func (s *MemoryStorage) Notifications() NotificationRepository {
	return &notificationRepo{s: s}
}

type outageRepo struct {
	s *MemoryStorage
}

func (r *outageRepo) GetByID(ctx context.Context, id string) (*models.Outage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.outages {
		if o.ID == id {
			return o.Clone(), nil
		}
	}
	return nil, fmt.Errorf("outage %s: %w", id, ErrNotFound)
}

func (r *outageRepo) List(ctx context.Context) ([]*models.Outage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Outage, len(r.s.outages))
	for i, o := range r.s.outages {
		out[i] = o.Clone()
	}
	return out, nil
}

func (r *outageRepo) SetEstimatedResolution(ctx context.Context, id string, at time.Time) (*models.Outage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, o := range r.s.outages {
		if o.ID != id {
			continue
		}
		next := make([]*models.Outage, len(r.s.outages))
		copy(next, r.s.outages)
		next[i] = o.WithResolution(at)
		r.s.outages = next
		return next[i].Clone(), nil
	}
	return nil, fmt.Errorf("outage %s: %w", id, ErrNotFound)
}

type notificationRepo struct {
	s *MemoryStorage
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, n := range r.s.notifications {
		if n.ID == id {
			c := *n
			return &c, nil
		}
	}
	return nil, fmt.Errorf("notification %s: %w", id, ErrNotFound)
}

func (r *notificationRepo) List(ctx context.Context) ([]*models.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Notification, len(r.s.notifications))
	for i, n := range r.s.notifications {
		c := *n
		out[i] = &c
	}
	return out, nil
}
