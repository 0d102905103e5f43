package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/models"
	"github.com/good-yellow-bee/powerconnect/internal/storage"
	"github.com/good-yellow-bee/powerconnect/internal/toast"
)

func newTestService(t *testing.T, cfg Config) (*Service, *storage.MemoryStorage, *toast.Queue) {
	t.Helper()
	store := storage.NewMemoryStorage()
	store.Load([]*models.Outage{
		{ID: "OUT-7823", Area: "Central District", Feeder: "Main-F12", Status: models.StatusOutage, AffectedUsers: 1245, StartTime: time.Date(2023, 8, 18, 15, 30, 0, 0, time.UTC)},
	}, nil)
	q := toast.NewQueue(5, time.Minute)
	return NewService(store, q, cfg), store, q
}

func fastConfig() Config {
	return Config{RatePerMinute: 0}
}

func TestUpdateTime_ThreeHoursAfterInvocation(t *testing.T) {
	svc, store, q := newTestService(t, fastConfig())
	invoked := time.Date(2023, 8, 18, 16, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return invoked })

	ctx := toast.WithClient(context.Background(), "c1")
	o, err := svc.UpdateTime(ctx, "OUT-7823")
	if err != nil {
		t.Fatalf("UpdateTime: %v", err)
	}
	want := invoked.Add(3 * time.Hour)
	if o.EstimatedResolution == nil || !o.EstimatedResolution.Equal(want) {
		t.Errorf("EstimatedResolution = %v, want %v", o.EstimatedResolution, want)
	}

	stored, _ := store.Outages().GetByID(ctx, "OUT-7823")
	if !stored.EstimatedResolution.Equal(want) {
		t.Error("resolution not persisted in store")
	}

	toasts := q.Drain("c1")
	if len(toasts) != 1 || toasts[0].Title != "Restoration time updated" {
		t.Fatalf("toasts = %+v", toasts)
	}
	if toasts[0].Description != "Estimated restoration time updated for Central District" {
		t.Errorf("description = %q", toasts[0].Description)
	}
}

func TestUpdateTime_NotFound(t *testing.T) {
	svc, _, q := newTestService(t, fastConfig())
	ctx := toast.WithClient(context.Background(), "c1")

	_, err := svc.UpdateTime(ctx, "OUT-0000")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if len(q.Drain("c1")) != 0 {
		t.Error("no toast expected for unknown outage")
	}
}

func TestUpdateTime_Cancelled(t *testing.T) {
	cfg := fastConfig()
	cfg.UpdateDelay = time.Hour
	svc, store, _ := newTestService(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := svc.UpdateTime(ctx, "OUT-7823"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
	o, _ := store.Outages().GetByID(context.Background(), "OUT-7823")
	if o.EstimatedResolution != nil {
		t.Error("cancelled action must not update the record")
	}
}

func TestSendNotification(t *testing.T) {
	svc, store, q := newTestService(t, fastConfig())
	ctx := toast.WithClient(context.Background(), "c1")

	if err := svc.SendNotification(ctx, "OUT-7823"); err != nil {
		t.Fatalf("SendNotification: %v", err)
	}
	toasts := q.Drain("c1")
	if len(toasts) != 1 || toasts[0].Title != "Notifications sent" {
		t.Fatalf("toasts = %+v", toasts)
	}
	if !strings.HasPrefix(toasts[0].Description, "1245 users have been notified") {
		t.Errorf("description = %q", toasts[0].Description)
	}

	o, _ := store.Outages().GetByID(ctx, "OUT-7823")
	if o.EstimatedResolution != nil {
		t.Error("notify must not modify the record")
	}
}

func TestSaveSettings(t *testing.T) {
	svc, _, q := newTestService(t, fastConfig())
	ctx := toast.WithClient(context.Background(), "c1")

	if err := svc.SaveSettings(ctx); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	toasts := q.Drain("c1")
	if len(toasts) != 1 || toasts[0].Title != "Settings saved" {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestSaveSettings_WaitsForDelay(t *testing.T) {
	cfg := fastConfig()
	cfg.SaveDelay = 30 * time.Millisecond
	svc, _, _ := newTestService(t, cfg)

	start := time.Now()
	if err := svc.SaveSettings(context.Background()); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Error("save returned before its delay")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := fastConfig()
	cfg.RatePerMinute = 2
	svc, _, _ := newTestService(t, cfg)
	ctx := toast.WithClient(context.Background(), "c1")

	for i := 0; i < 2; i++ {
		if err := svc.SaveSettings(ctx); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if err := svc.SaveSettings(ctx); !errors.Is(err, ErrRateLimited) {
		t.Errorf("third call err = %v, want ErrRateLimited", err)
	}

	other := toast.WithClient(context.Background(), "c2")
	if err := svc.SaveSettings(other); err != nil {
		t.Errorf("other client limited: %v", err)
	}
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(0)
	for i := 0; i < 100; i++ {
		if !l.Allow("c") {
			t.Fatal("disabled limiter refused")
		}
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	l := NewLimiter(5)
	for i := 0; i < 1000; i++ {
		l.Allow(fmt.Sprintf("client-%d", i))
	}
	if l.Len() != 1000 {
		t.Fatalf("Len = %d, want 1000", l.Len())
	}

	// Recent clients survive a cleanup.
	l.Cleanup()
	if l.Len() != 1000 {
		t.Errorf("Len after cleanup of active clients = %d, want 1000", l.Len())
	}

	l.idle = -time.Second
	l.Cleanup()
	if l.Len() != 0 {
		t.Errorf("Len after cleanup of idle clients = %d, want 0", l.Len())
	}
}

func TestService_CleanupDropsIdleClients(t *testing.T) {
	cfg := fastConfig()
	cfg.RatePerMinute = 10
	svc, _, _ := newTestService(t, cfg)

	if err := svc.SaveSettings(toast.WithClient(context.Background(), "c1")); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if svc.limiter.Len() != 1 {
		t.Fatalf("tracked clients = %d, want 1", svc.limiter.Len())
	}
	svc.limiter.idle = -time.Second
	svc.Cleanup()
	if svc.limiter.Len() != 0 {
		t.Errorf("tracked clients after cleanup = %d, want 0", svc.limiter.Len())
	}
}
