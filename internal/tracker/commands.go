package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"expensetracker/internal/core"
	applog "expensetracker/internal/log"
	"expensetracker/internal/store"
)

// load replaces the table with the store content, keeping the active filter.
func (a *App) load(ctx context.Context, _ Form, _ *State, fields applog.LogFields) (Message, error) {
	records, err := a.store.LoadAll(ctx)
	if err != nil {
		return Message{}, err
	}
	a.table.Reset(records)
	fields.WithOperation(applog.OpLoad)
	return Message{}, nil
}

// add validates the form, appends to the store and only then to the table.
func (a *App) add(ctx context.Context, form Form, _ *State, fields applog.LogFields) (Message, error) {
	r, err := core.ValidateEntry(form.Entry(), core.DateOf(a.now()))
	if err != nil {
		return Message{}, err
	}
	fields.WithRecord(r).WithOperation(applog.OpAppend)

	if err := a.store.Append(ctx, r); err != nil {
		return Message{}, err
	}
	a.table.Append(r)

	a.notify(ctx, applog.OpAppend, func(n Notifier) error { return n.RecordAdded(ctx, r) })
	return Message{}, nil
}

// remove deletes the selected rows. The table is changed on a clone that is
// committed once the store agrees.
//
// A single row is removed from the store by tuple match, picking the same
// occurrence among equal records as the row has among equal rows, so the
// store keeps the table's order. Several rows, or a store that no longer
// holds the tuple, are reconciled by rewriting the store from the table.
func (a *App) remove(ctx context.Context, form Form, _ *State, fields applog.LogFields) (Message, error) {
	fields.With(applog.FieldSelected, len(form.Selected))

	next := a.table.Clone()
	removed, err := next.Remove(form.Selected)
	if err != nil {
		return Message{}, err
	}

	if len(removed) == 1 {
		target := removed[0]
		occurrence := a.table.Occurrence(minIndex(form.Selected))
		fields.WithRecord(target).WithOperation(applog.OpRemove)

		n, err := store.RemoveMatching(ctx, a.store, target, occurrence)
		if err != nil {
			return Message{}, err
		}
		if n == 1 {
			a.table = next
			a.notify(ctx, applog.OpRemove, func(nt Notifier) error { return nt.RecordRemoved(ctx, target) })
			return Message{}, nil
		}
		a.logger.WarnContext(ctx, "Removed row not found in store, rewriting from table",
			applog.FieldName, target.Name,
			applog.FieldDate, target.Date.String())
	}

	fields.WithOperation(applog.OpRewrite)
	records := next.Records()
	if err := a.store.RewriteAll(ctx, records); err != nil {
		return Message{}, err
	}
	a.table = next
	a.notify(ctx, applog.OpRewrite, func(nt Notifier) error { return nt.RecordsRewritten(ctx, len(records)) })
	return Message{}, nil
}

// filter only toggles row visibility.
func (a *App) filter(_ context.Context, form Form, _ *State, fields applog.LogFields) (Message, error) {
	a.table.Filter(form.Filter)
	fields.With(applog.FieldFilter, a.table.ActiveFilter())
	return Message{}, nil
}

// export writes every table row, hidden ones included, so the file matches
// the displayed total.
func (a *App) export(ctx context.Context, form Form, _ *State, fields applog.LogFields) (Message, error) {
	if form.ExportPath == "" {
		return Message{}, core.ErrExportCancelled
	}
	if a.exporter == nil {
		return Message{}, errors.New("export is not configured")
	}
	fields.WithOperation(applog.OpExport).With(applog.FieldPath, form.ExportPath)

	records := a.table.Records()
	if err := a.exporter.Export(ctx, form.ExportPath, records); err != nil {
		return Message{}, err
	}
	return exportedMessage(form.ExportPath, len(records)), nil
}

func (a *App) summarize(_ context.Context, _ Form, st *State, _ applog.LogFields) (Message, error) {
	s := core.Summarize(a.table.Records())
	st.Summary = &s
	return summaryMessage(s), nil
}

// chart reads the store, not the table, and renders the monthly net balance.
func (a *App) chart(ctx context.Context, _ Form, st *State, fields applog.LogFields) (Message, error) {
	if a.renderer == nil {
		return Message{}, errors.New("chart rendering is not configured")
	}
	records, err := a.store.LoadAll(ctx)
	if err != nil {
		return Message{}, err
	}
	if len(records) == 0 {
		return Message{}, core.ErrNoData
	}

	months := core.MonthlyBalances(records)
	fields.With(applog.FieldPath, a.chartPath).With("months", len(months))
	if err := a.renderer.Render(ctx, a.chartPath, months); err != nil {
		return Message{}, fmt.Errorf("render chart: %w", err)
	}
	st.Chart = &ChartResult{Path: a.chartPath, Months: months}
	return Message{}, nil
}

func minIndex(indices []int) int {
	s := append([]int(nil), indices...)
	sort.Ints(s)
	return s[0]
}
