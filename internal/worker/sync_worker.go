// Package worker mirrors the record store into an external spreadsheet.
package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/store"
)

// Mirror replaces the whole content of an external copy of the records.
type Mirror interface {
	ReplaceAll(ctx context.Context, records []core.Record) error
}

// SyncWorker copies the full store to a Mirror whenever a change event
// arrives and on a fixed interval as a backup for lost events.
type SyncWorker struct {
	loader store.RecordLoader
	mirror Mirror
	logger *applog.Logger

	mu       sync.Mutex
	lastSync time.Time
	synced   int
}

func NewSyncWorker(loader store.RecordLoader, mirror Mirror, logger *applog.Logger) *SyncWorker {
	if logger == nil {
		logger = applog.Discard()
	}
	return &SyncWorker{
		loader: loader,
		mirror: mirror,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleRecordEvent processes a single change event from AMQP. The event
// payload is not trusted: the store is reloaded and mirrored as a whole, so
// duplicated or reordered events converge to the same result.
func (w *SyncWorker) HandleRecordEvent(ctx context.Context, ev *amqp.RecordEvent) error {
	w.logger.InfoContext(ctx, "Processing record event",
		"type", ev.Type,
		"timestamp", ev.Timestamp)

	if err := w.SyncAll(ctx); err != nil {
		return fmt.Errorf("sync after %s: %w", ev.Type, err)
	}
	return nil
}

// SyncAll reloads the store and replaces the mirror content.
func (w *SyncWorker) SyncAll(ctx context.Context) error {
	records, err := w.loader.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if err := w.mirror.ReplaceAll(ctx, records); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}

	w.mu.Lock()
	w.lastSync = time.Now()
	w.synced = len(records)
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "Mirror synchronized",
		applog.FieldOperation, applog.OpSync,
		applog.FieldRows, len(records))
	return nil
}

// LastSync returns when the mirror was last replaced and with how many rows.
func (w *SyncWorker) LastSync() (time.Time, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSync, w.synced
}

// StartupSyncCheck mirrors the store once at worker startup, recovering
// from events missed while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	if err := w.SyncAll(ctx); err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	return nil
}

// RunPeriodicSync mirrors the store every interval until ctx is done.
// Failures are logged and retried on the next tick.
func (w *SyncWorker) RunPeriodicSync(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "Stopping periodic sync")
			return
		case <-ticker.C:
			if err := w.SyncAll(ctx); err != nil {
				w.logger.ErrorContext(ctx, "Periodic sync failed", applog.FieldError, err)
			}
		}
	}
}
