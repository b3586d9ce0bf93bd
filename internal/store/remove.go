package store

import (
	"context"
	"fmt"

	"expensetracker/internal/core"
)

// AllOccurrences makes RemoveMatching delete every record equal to the target.
const AllOccurrences = -1

// RemoveMatching deletes records equal to target and rewrites the store.
//
// With occurrence >= 0 only the occurrence-th (zero based) equal record is
// removed, so callers that know the position of a row among its duplicates
// keep the store in the same order as their own view. It returns the number
// of records removed; when nothing matches the store is left untouched.
func RemoveMatching(ctx context.Context, s Store, target core.Record, occurrence int) (int, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load records: %w", err)
	}

	kept := make([]core.Record, 0, len(records))
	removed, seen := 0, 0
	for _, r := range records {
		if r.Equal(target) {
			match := occurrence == AllOccurrences || seen == occurrence
			seen++
			if match {
				removed++
				continue
			}
		}
		kept = append(kept, r)
	}

	if removed == 0 {
		return 0, nil
	}
	if err := s.RewriteAll(ctx, kept); err != nil {
		return 0, fmt.Errorf("rewrite records: %w", err)
	}
	return removed, nil
}
