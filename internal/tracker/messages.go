package tracker

import (
	"errors"
	"fmt"
	"strings"

	"expensetracker/internal/core"
)

var errUnknownCommand = errors.New("unknown command")

// isUserError reports whether err is caused by input the user can correct.
func isUserError(err error) bool {
	for _, target := range []error{
		core.ErrMissingField,
		core.ErrInvalidAmount,
		core.ErrInvalidDate,
		core.ErrNoSelection,
		core.ErrRowOutOfRange,
		core.ErrNoData,
		core.ErrExportCancelled,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func errorMessage(err error) Message {
	m := Message{Severity: SeverityError, Title: "Error", Err: err}
	switch {
	case errors.Is(err, core.ErrMissingField):
		m.Text = "Both Name and Amount fields are required!"
	case errors.Is(err, core.ErrInvalidAmount):
		m.Text = "Amount must be a valid number!"
	case errors.Is(err, core.ErrInvalidDate):
		m.Text = "Date must use the YYYY-MM-DD format!"
	case errors.Is(err, core.ErrNoSelection):
		m.Text = "No expense selected for removal!"
	case errors.Is(err, core.ErrRowOutOfRange):
		m.Text = "The selected expense no longer exists. Reload and try again."
	case errors.Is(err, core.ErrNoData):
		m.Title = "No Data"
		m.Text = "No expenses recorded yet, nothing to chart."
	case errors.Is(err, core.ErrExportCancelled):
		m.Severity = SeverityInfo
		m.Title = "Export Cancelled"
		m.Text = "No file was chosen, nothing was exported."
	case errors.Is(err, core.ErrStoreUnavailable):
		m.Text = fmt.Sprintf("Could not access the expense records: %v", err)
	default:
		m.Text = fmt.Sprintf("Unexpected error: %v", err)
	}
	return m
}

func exportedMessage(path string, rows int) Message {
	return Message{
		Severity: SeverityInfo,
		Title:    "Export Successful",
		Text:     fmt.Sprintf("%d expenses have been exported to '%s'.", rows, path),
	}
}

func summaryMessage(s core.Summary) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %s\n", core.FormatAmount(s.Total))
	fmt.Fprintf(&b, "Net balance: %s", core.FormatAmount(s.Net))
	for _, c := range s.ByCategory {
		fmt.Fprintf(&b, "\n%s: %s", c.Category, core.FormatAmount(c.Amount))
	}
	return Message{Severity: SeverityInfo, Title: "Summary", Text: b.String()}
}
