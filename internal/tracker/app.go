// Package tracker dispatches user commands against the record store and the
// table model, keeping the two reconciled after every command.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"expensetracker/internal/chart"
	"expensetracker/internal/core"
	"expensetracker/internal/export"
	applog "expensetracker/internal/log"
	"expensetracker/internal/store"
	"expensetracker/internal/table"
)

// Notifier is told about every store change after it succeeded.
type Notifier interface {
	RecordAdded(ctx context.Context, r core.Record) error
	RecordRemoved(ctx context.Context, r core.Record) error
	RecordsRewritten(ctx context.Context, rows int) error
}

// Options configure an App. Store is required.
type Options struct {
	Store    store.Store
	Exporter export.Exporter
	Renderer chart.Renderer
	// Notifier may be nil.
	Notifier  Notifier
	ChartPath string
	Logger    *applog.Logger
	// Now defaults to time.Now and supplies the date of entries without one.
	Now func() time.Time
}

// App is the application state shared by all command handlers. Commands are
// serialized: at most one handler runs at a time.
type App struct {
	mu sync.Mutex

	store     store.Store
	table     *table.Model
	exporter  export.Exporter
	renderer  chart.Renderer
	notifier  Notifier
	chartPath string
	logger    *applog.Logger
	now       func() time.Time
}

func New(opts Options) (*App, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("tracker: store is required")
	}
	a := &App{
		store:     opts.Store,
		table:     table.New(),
		exporter:  opts.Exporter,
		renderer:  opts.Renderer,
		notifier:  opts.Notifier,
		chartPath: opts.ChartPath,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	if a.logger == nil {
		a.logger = applog.Discard()
	}
	a.logger = a.logger.WithComponent(applog.ComponentTracker)
	if a.now == nil {
		a.now = time.Now
	}
	if a.chartPath == "" {
		a.chartPath = "chart.png"
	}
	return a, nil
}

type handler func(ctx context.Context, form Form, st *State, fields applog.LogFields) (Message, error)

// HandleCommand runs one command and returns the resulting window state and
// the message to show. Failures never escape as errors: they come back as a
// Message with SeverityError, and the state is left as before the command.
func (a *App) HandleCommand(ctx context.Context, cmd Command, form Form) (State, Message) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var h handler
	switch cmd {
	case CmdLoad:
		h = a.load
	case CmdAdd:
		h = a.add
	case CmdRemove:
		h = a.remove
	case CmdFilter:
		h = a.filter
	case CmdExport:
		h = a.export
	case CmdSummarize:
		h = a.summarize
	case CmdChart:
		h = a.chart
	default:
		err := fmt.Errorf("%w: %q", errUnknownCommand, cmd)
		a.logger.LogCommand(ctx, string(cmd), applog.NewFields(), err, false)
		return a.snapshot(), errorMessage(err)
	}

	st := State{}
	fields := applog.NewFields()
	msg, err := h(ctx, form, &st, fields)
	a.logger.LogCommand(ctx, string(cmd), fields.WithRows(a.table.Len()), err, isUserError(err))
	if err != nil {
		msg = errorMessage(err)
	}

	out := a.snapshot()
	out.Summary = st.Summary
	out.Chart = st.Chart
	return out, msg
}

// State returns the current window state without running a command.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

func (a *App) snapshot() State {
	return State{
		Rows:       a.table.Rows(),
		Total:      a.table.Total(),
		TotalLabel: a.table.TotalLabel(),
		Filter:     a.table.ActiveFilter(),
	}
}

// notify reports a store change. The change is already durable, so a
// failure is only logged.
func (a *App) notify(ctx context.Context, op string, publish func(Notifier) error) {
	if a.notifier == nil {
		return
	}
	if err := publish(a.notifier); err != nil {
		a.logger.WarnContext(ctx, "Failed to publish change event, continuing",
			applog.FieldOperation, op,
			applog.FieldError, err)
	}
}
