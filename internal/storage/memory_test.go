package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/good-yellow-bee/powerconnect/internal/models"
)

func newTestStorage() *MemoryStorage {
	s := NewMemoryStorage()
	start := time.Date(2023, 8, 18, 15, 30, 0, 0, time.UTC)
	s.Load(
		[]*models.Outage{
			{ID: "OUT-7823", Area: "Central District", Feeder: "Main-F12", Status: models.StatusOutage, StartTime: start, AffectedUsers: 1245},
			{ID: "OUT-7826", Area: "South Region", Feeder: "Commercial-F5", Status: models.StatusOnline, StartTime: start, AffectedUsers: 350},
		},
		[]*models.Notification{
			{ID: "NOTIF-9241", Title: "Power Outage Detected", Status: models.StatusOutage, Priority: models.PriorityHigh},
		},
	)
	return s
}

func TestMemoryStorage_Ping(t *testing.T) {
	s := NewMemoryStorage()
	if err := s.Ping(context.Background()); err == nil {
		t.Error("expected error before Load")
	}
	s = newTestStorage()
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestOutageRepo_GetByID(t *testing.T) {
	s := newTestStorage()
	ctx := context.Background()

	o, err := s.Outages().GetByID(ctx, "OUT-7823")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if o.Feeder != "Main-F12" {
		t.Errorf("Feeder = %s", o.Feeder)
	}

	_, err = s.Outages().GetByID(ctx, "OUT-0000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOutageRepo_ListReturnsCopies(t *testing.T) {
	s := newTestStorage()
	ctx := context.Background()

	list, _ := s.Outages().List(ctx)
	list[0].Area = "changed"

	again, _ := s.Outages().List(ctx)
	if again[0].Area != "Central District" {
		t.Error("List exposed internal records")
	}
}

func TestOutageRepo_SetEstimatedResolution(t *testing.T) {
	s := newTestStorage()
	ctx := context.Background()

	before, _ := s.Outages().List(ctx)
	at := time.Date(2023, 8, 18, 17, 0, 0, 0, time.UTC)

	updated, err := s.Outages().SetEstimatedResolution(ctx, "OUT-7823", at)
	if err != nil {
		t.Fatalf("SetEstimatedResolution: %v", err)
	}
	if updated.EstimatedResolution == nil || !updated.EstimatedResolution.Equal(at.Add(3*time.Hour)) {
		t.Errorf("EstimatedResolution = %v, want %v", updated.EstimatedResolution, at.Add(3*time.Hour))
	}
	if before[0].EstimatedResolution != nil {
		t.Error("earlier snapshot was modified")
	}

	got, _ := s.Outages().GetByID(ctx, "OUT-7823")
	if got.EstimatedResolution == nil {
		t.Error("update not stored")
	}

	if _, err := s.Outages().SetEstimatedResolution(ctx, "nope", at); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestNotificationRepo(t *testing.T) {
	s := newTestStorage()
	ctx := context.Background()

	list, err := s.Notifications().List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d, %v", len(list), err)
	}
	if _, err := s.Notifications().GetByID(ctx, "NOTIF-9241"); err != nil {
		t.Errorf("GetByID: %v", err)
	}
	if _, err := s.Notifications().GetByID(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
