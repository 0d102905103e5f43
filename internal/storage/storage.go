// Package storage provides the in-memory outage and notification stores.
//
// Records are never mutated in place: updates publish a new slice holding a
// new record, so readers holding an earlier slice keep a consistent view.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/models"
)

// ErrNotFound is returned when a record id is unknown.
var ErrNotFound = errors.New("record not found")

// Storage is the main interface for sample data access.
type Storage interface {
	// Load replaces all records, e.g. after the seed file changed.
	Load(outages []*models.Outage, notifications []*models.Notification)
	// Ping reports whether data has been loaded.
	Ping(ctx context.Context) error

	Outages() OutageRepository
	Notifications() NotificationRepository
}

// OutageRepository defines operations on outage records.
type OutageRepository interface {
	GetByID(ctx context.Context, id string) (*models.Outage, error)
	List(ctx context.Context) ([]*models.Outage, error)
	// SetEstimatedResolution sets the estimated resolution to at + models.ResolutionLead.
	SetEstimatedResolution(ctx context.Context, id string, at time.Time) (*models.Outage, error)
}

// NotificationRepository defines operations on notification records.
type NotificationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	List(ctx context.Context) ([]*models.Notification, error)
}
