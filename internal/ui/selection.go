package ui

import (
	"sort"

	"expensetracker/internal/table"
)

// selection tracks which table rows the user marked for removal. Indices
// refer to model rows, not displayed rows.
type selection map[int]bool

func (s selection) toggle(i int) {
	if s[i] {
		delete(s, i)
		return
	}
	s[i] = true
}

func (s selection) indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (s selection) clear() {
	for i := range s {
		delete(s, i)
	}
}

// visibleRows maps each displayed row to its model row index.
func visibleRows(rows []table.Row) []int {
	out := make([]int, 0, len(rows))
	for i, r := range rows {
		if !r.Hidden {
			out = append(out, i)
		}
	}
	return out
}
