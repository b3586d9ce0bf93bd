// Package export writes the table's records to spreadsheet sinks.
package export

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
)

// Header is the first row of every export.
var Header = []string{"Date", "Name", "Amount", "Category"}

// Exporter writes a header row plus one row per record. Sinks that are not
// files ignore path.
type Exporter interface {
	Export(ctx context.Context, path string, records []core.Record) error
}

// Row returns the exported cells of r. The amount is the canonical decimal
// text, without currency prefix.
func Row(r core.Record) []string {
	return []string{r.Date.String(), r.Name, core.StorageText(r.Amount), string(r.Category)}
}

// Fanout writes the primary sink and every mirror in parallel. Only the
// primary decides the outcome; mirror failures are logged.
type Fanout struct {
	Primary Exporter
	Mirrors []Exporter
	Logger  *applog.Logger
}

func (f *Fanout) Export(ctx context.Context, path string, records []core.Record) error {
	if f.Primary == nil {
		return fmt.Errorf("export: no primary exporter")
	}
	logger := f.Logger
	if logger == nil {
		logger = applog.Discard()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := f.Primary.Export(gctx, path, records); err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
		return nil
	})
	for i, m := range f.Mirrors {
		i, m := i, m
		g.Go(func() error {
			// Use the parent context so a primary failure does not abort mirrors mid-write.
			if err := m.Export(ctx, path, records); err != nil {
				logger.WarnContext(ctx, "Export mirror failed, continuing",
					applog.FieldOperation, applog.OpExport,
					"mirror", i,
					applog.FieldError, err)
			}
			return nil
		})
	}
	return g.Wait()
}
