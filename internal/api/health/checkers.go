package health

import (
	"context"
	"fmt"
)

// Pinger interface for stores that support ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorageChecker checks that the outage store is loaded.
type StorageChecker struct {
	pinger Pinger
}

// NewStorageChecker creates a new storage health checker.
func NewStorageChecker(p Pinger) *StorageChecker {
	return &StorageChecker{pinger: p}
}

// Name returns the checker name.
func (c *StorageChecker) Name() string {
	return "storage"
}

// Check verifies the store answers.
func (c *StorageChecker) Check(ctx context.Context) error {
	if c.pinger == nil {
		return fmt.Errorf("storage not configured")
	}
	return c.pinger.Ping(ctx)
}

// WatcherChecker checks that the seed file watcher is running.
type WatcherChecker struct {
	isRunning func() bool
}

// NewWatcherChecker creates a new seed watcher health checker.
func NewWatcherChecker(isRunning func() bool) *WatcherChecker {
	return &WatcherChecker{isRunning: isRunning}
}

// Name returns the checker name.
func (c *WatcherChecker) Name() string {
	return "seed_watcher"
}

// Check verifies the watcher loop is active.
func (c *WatcherChecker) Check(ctx context.Context) error {
	if c.isRunning == nil || !c.isRunning() {
		return fmt.Errorf("seed watcher not running")
	}
	return nil
}
