// Package actions implements the simulated dashboard and settings actions.
//
// Each action waits a fixed delay through task.Run, always succeeds once the
// delay has elapsed, and reports its outcome with a toast.
package actions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/metrics"
	"github.com/good-yellow-bee/powerconnect/internal/models"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
	"github.com/good-yellow-bee/powerconnect/internal/task"
	"github.com/good-yellow-bee/powerconnect/internal/toast"
)

// Action names used in metrics and logs.
const (
	ActionUpdateTime   = "update_time"
	ActionNotify       = "send_notification"
	ActionSaveSettings = "save_settings"
)

// ErrRateLimited is returned when a client triggers actions too quickly.
var ErrRateLimited = errors.New("too many actions, slow down")

// Config holds the simulated processing delays.
type Config struct {
	UpdateDelay   time.Duration
	NotifyDelay   time.Duration
	SaveDelay     time.Duration
	RatePerMinute int
}

// DefaultConfig returns the standard action delays and limit.
func DefaultConfig() Config {
	return Config{
		UpdateDelay:   time.Second,
		NotifyDelay:   1500 * time.Millisecond,
		SaveDelay:     time.Second,
		RatePerMinute: 30,
	}
}

// Service runs actions against the sample store.
type Service struct {
	outages storage.OutageRepository
	toaster toast.Toaster
	limiter *Limiter
	cfg     Config
	now     func() time.Time
}

// NewService creates an action service.
func NewService(store storage.Storage, toaster toast.Toaster, cfg Config) *Service {
	return &Service{
		outages: store.Outages(),
		toaster: toaster,
		limiter: NewLimiter(cfg.RatePerMinute),
		cfg:     cfg,
		now:     time.Now,
	}
}

// SetClock overrides the time source used for invocation timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// UpdateTime sets the outage's estimated resolution to the invocation time
// plus models.ResolutionLead.
func (s *Service) UpdateTime(ctx context.Context, id string) (*models.Outage, error) {
	invokedAt := s.now()
	begin := time.Now()
	if err := s.admit(ctx, ActionUpdateTime); err != nil {
		return nil, err
	}
	if _, err := s.outages.GetByID(ctx, id); err != nil {
		s.record(ActionUpdateTime, err, begin)
		return nil, err
	}

	var updated *models.Outage
	err := task.Run(ctx, s.cfg.UpdateDelay, func(ctx context.Context) error {
		o, err := s.outages.SetEstimatedResolution(ctx, id, invokedAt)
		if err != nil {
			return err
		}
		updated = o
		return s.toaster.Show(ctx, toast.Toast{
			Title:       "Restoration time updated",
			Description: fmt.Sprintf("Estimated restoration time updated for %s", o.Area),
		})
	})
	s.record(ActionUpdateTime, err, begin)
	if err != nil {
		return nil, fmt.Errorf("update time for %s: %w", id, err)
	}
	return updated, nil
}

// SendNotification pretends to notify the affected users of an outage.
func (s *Service) SendNotification(ctx context.Context, id string) error {
	begin := time.Now()
	if err := s.admit(ctx, ActionNotify); err != nil {
		return err
	}
	o, err := s.outages.GetByID(ctx, id)
	if err != nil {
		s.record(ActionNotify, err, begin)
		return err
	}

	err = task.Run(ctx, s.cfg.NotifyDelay, func(ctx context.Context) error {
		return s.toaster.Show(ctx, toast.Toast{
			Title:       "Notifications sent",
			Description: strconv.Itoa(o.AffectedUsers) + " users have been notified about the status",
		})
	})
	s.record(ActionNotify, err, begin)
	if err != nil {
		return fmt.Errorf("notify users for %s: %w", id, err)
	}
	return nil
}

// SaveSettings simulates committing the client's preferences. There is no
// commit target; the call always succeeds after the delay.
func (s *Service) SaveSettings(ctx context.Context) error {
	begin := time.Now()
	if err := s.admit(ctx, ActionSaveSettings); err != nil {
		return err
	}

	err := task.Run(ctx, s.cfg.SaveDelay, func(ctx context.Context) error {
		return s.toaster.Show(ctx, toast.Toast{
			Title:       "Settings saved",
			Description: "Your notification preferences have been updated.",
		})
	})
	s.record(ActionSaveSettings, err, begin)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Cleanup forgets rate limit state of idle clients.
func (s *Service) Cleanup() {
	s.limiter.Cleanup()
}

func (s *Service) admit(ctx context.Context, action string) error {
	if s.limiter.Allow(toast.ClientFromContext(ctx)) {
		return nil
	}
	metrics.ActionsTotal.WithLabelValues(action, "rate_limited").Inc()
	return ErrRateLimited
}

func (s *Service) record(action string, err error, start time.Time) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		result = "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		result = "cancelled"
	default:
		result = "error"
	}
	metrics.ActionsTotal.WithLabelValues(action, result).Inc()
	metrics.ActionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}
