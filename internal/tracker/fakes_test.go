package tracker

import (
	"context"
	"fmt"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/store/memory"
)

type fakeExporter struct {
	path    string
	records []core.Record
	err     error
}

func (f *fakeExporter) Export(_ context.Context, path string, records []core.Record) error {
	f.path = path
	f.records = append([]core.Record(nil), records...)
	return f.err
}

type fakeRenderer struct {
	path   string
	months []core.MonthBalance
	err    error
}

func (f *fakeRenderer) Render(_ context.Context, path string, months []core.MonthBalance) error {
	f.path = path
	f.months = months
	return f.err
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
	err    error
}

func (f *fakeNotifier) record(ev string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeNotifier) RecordAdded(_ context.Context, r core.Record) error {
	return f.record("added:" + r.Name)
}

func (f *fakeNotifier) RecordRemoved(_ context.Context, r core.Record) error {
	return f.record("removed:" + r.Name)
}

func (f *fakeNotifier) RecordsRewritten(_ context.Context, rows int) error {
	return f.record(fmt.Sprintf("rewritten:%d", rows))
}

// failingStore is a memory store whose operations can be made to fail.
type failingStore struct {
	*memory.Store
	appendErr  error
	loadErr    error
	rewriteErr error
}

func (s *failingStore) Append(ctx context.Context, r core.Record) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	return s.Store.Append(ctx, r)
}

func (s *failingStore) LoadAll(ctx context.Context) ([]core.Record, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.Store.LoadAll(ctx)
}

func (s *failingStore) RewriteAll(ctx context.Context, records []core.Record) error {
	if s.rewriteErr != nil {
		return s.rewriteErr
	}
	return s.Store.RewriteAll(ctx, records)
}
