// Package store defines the record store ports and helpers built on them.
package store

import (
	"context"

	"expensetracker/internal/core"
)

// Ports for record persistence.
type (
	// RecordAppender adds one record at the end of the store without
	// touching prior content.
	RecordAppender interface {
		Append(ctx context.Context, r core.Record) error
	}

	// RecordLoader returns every stored record in append order.
	RecordLoader interface {
		LoadAll(ctx context.Context) ([]core.Record, error)
	}

	// RecordRewriter replaces the whole store content.
	RecordRewriter interface {
		RewriteAll(ctx context.Context, records []core.Record) error
	}

	Store interface {
		RecordAppender
		RecordLoader
		RecordRewriter
	}
)
