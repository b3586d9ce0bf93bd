package tracker

import (
	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
	"expensetracker/internal/table"
)

// Command identifies one user action.
type Command string

const (
	CmdLoad      Command = "load"
	CmdAdd       Command = "add"
	CmdRemove    Command = "remove"
	CmdFilter    Command = "filter"
	CmdExport    Command = "export"
	CmdSummarize Command = "summarize"
	CmdChart     Command = "chart"
)

// Form is a snapshot of the window inputs at the time of a command.
// Selected holds table row indices, hidden rows included.
type Form struct {
	Date       string
	Name       string
	Amount     string
	Category   string
	Selected   []int
	Filter     string
	ExportPath string
}

// Entry returns the record fields of the form.
func (f Form) Entry() core.Entry {
	return core.Entry{Date: f.Date, Name: f.Name, Amount: f.Amount, Category: f.Category}
}

// ChartResult describes a rendered chart.
type ChartResult struct {
	Path   string
	Months []core.MonthBalance
}

// State is what the window renders after a command.
type State struct {
	Rows       []table.Row
	Total      decimal.Decimal
	TotalLabel string
	Filter     string
	// Summary is set by CmdSummarize.
	Summary *core.Summary
	// Chart is set by a successful CmdChart.
	Chart *ChartResult
}

// Severity tells the window how to present a Message.
type Severity int

const (
	// SeverityNone means there is nothing to show.
	SeverityNone Severity = iota
	SeverityInfo
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityError:
		return "error"
	default:
		return "none"
	}
}

// Message is the user facing outcome of a command.
type Message struct {
	Severity Severity
	Title    string
	Text     string
	Err      error
}
