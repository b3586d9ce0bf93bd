// Package table holds the in-memory, display-ordered mirror of the record
// store: one row per record plus the visibility set by the category filter.
package table

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// Headers are the column titles in display and export order.
var Headers = []string{"Date", "Name", "Amount", "Category"}

type Row struct {
	Record core.Record
	Hidden bool
}

// Cells renders the row for display.
func (r Row) Cells() []string {
	return []string{
		r.Record.Date.String(),
		r.Record.Name,
		core.FormatAmount(r.Record.Amount),
		string(r.Record.Category),
	}
}

type Model struct {
	rows   []Row
	filter string
}

func New() *Model {
	return &Model{filter: core.FilterAll}
}

// Len returns the number of rows, hidden ones included.
func (m *Model) Len() int {
	return len(m.rows)
}

// Rows returns a copy of every row.
func (m *Model) Rows() []Row {
	return append([]Row(nil), m.rows...)
}

// Records returns the record of every row in display order.
func (m *Model) Records() []core.Record {
	out := make([]core.Record, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Record
	}
	return out
}

// Visible returns the indices of rows not hidden by the filter.
func (m *Model) Visible() []int {
	out := make([]int, 0, len(m.rows))
	for i, r := range m.rows {
		if !r.Hidden {
			out = append(out, i)
		}
	}
	return out
}

// Cells renders row i for display.
func (m *Model) Cells(i int) []string {
	return m.rows[i].Cells()
}

// Reset replaces every row and applies the active filter.
func (m *Model) Reset(records []core.Record) {
	m.rows = make([]Row, len(records))
	for i, r := range records {
		m.rows[i] = Row{Record: r, Hidden: !m.matches(r)}
	}
}

// Append adds a row at the end, hidden if the active filter excludes it.
func (m *Model) Append(r core.Record) {
	m.rows = append(m.rows, Row{Record: r, Hidden: !m.matches(r)})
}

// Remove deletes the rows at the given indices and returns their records in
// ascending index order. Duplicate indices are ignored. Rows are removed from
// the highest index down so earlier removals never shift later ones.
func (m *Model) Remove(indices []int) ([]core.Record, error) {
	if len(indices) == 0 {
		return nil, core.ErrNoSelection
	}

	unique := make([]int, 0, len(indices))
	seen := map[int]bool{}
	for _, i := range indices {
		if i < 0 || i >= len(m.rows) {
			return nil, fmt.Errorf("%w: %d (rows: %d)", core.ErrRowOutOfRange, i, len(m.rows))
		}
		if !seen[i] {
			seen[i] = true
			unique = append(unique, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(unique)))

	removed := make([]core.Record, len(unique))
	for n, i := range unique {
		removed[len(unique)-1-n] = m.rows[i].Record
		m.rows = append(m.rows[:i], m.rows[i+1:]...)
	}
	return removed, nil
}

// Occurrence returns how many rows before i hold a record equal to row i's.
func (m *Model) Occurrence(i int) int {
	n := 0
	for j := 0; j < i; j++ {
		if m.rows[j].Record.Equal(m.rows[i].Record) {
			n++
		}
	}
	return n
}

// Filter shows only rows whose category equals value, or every row when
// value is FilterAll or empty. It never removes rows.
func (m *Model) Filter(value string) {
	if value == "" {
		value = core.FilterAll
	}
	m.filter = value
	for i := range m.rows {
		m.rows[i].Hidden = !m.matches(m.rows[i].Record)
	}
}

// ActiveFilter returns the current filter value.
func (m *Model) ActiveFilter() string {
	return m.filter
}

// Total sums the amount of every row. Rows hidden by the filter are
// included: the total reflects the whole table, not the filtered view.
func (m *Model) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range m.rows {
		total = total.Add(r.Record.Amount)
	}
	return total
}

// TotalLabel renders the running total, e.g. "Total Expenses: $12.50".
func (m *Model) TotalLabel() string {
	return "Total Expenses: " + core.FormatAmount(m.Total())
}

// Clone returns an independent copy of the model.
func (m *Model) Clone() *Model {
	return &Model{rows: m.Rows(), filter: m.filter}
}

func (m *Model) matches(r core.Record) bool {
	return m.filter == core.FilterAll || string(r.Category) == m.filter
}
