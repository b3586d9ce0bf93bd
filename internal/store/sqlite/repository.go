// Package sqlite is a record store backed by a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"expensetracker/internal/core"
	"expensetracker/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// Open creates the database directory if needed, opens the database and
// applies pending migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append implements store.RecordAppender
func (s *Store) Append(ctx context.Context, r core.Record) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO records (date, name, amount, category) VALUES (?, ?, ?, ?)`,
		r.Date.String(), r.Name, core.StorageText(r.Amount), string(r.Category))
	if err != nil {
		return unavailable("insert record", err)
	}

	id, _ := res.LastInsertId()
	slog.DebugContext(ctx, "Record saved to SQLite", "id", id, "name", r.Name)
	return nil
}

// LoadAll implements store.RecordLoader. Rows that no longer decode are
// skipped and logged, like malformed lines in the flat file.
func (s *Store) LoadAll(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, date, name, amount, category FROM records ORDER BY id`)
	if err != nil {
		return nil, unavailable("query records", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var (
			id                           int64
			date, name, amount, category string
		)
		if err := rows.Scan(&id, &date, &name, &amount, &category); err != nil {
			return nil, unavailable("scan record", err)
		}

		d, err := core.ParseDate(date)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed record", "id", id, "error", err)
			continue
		}
		a, err := core.ParseAmount(amount)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed record", "id", id, "error", err)
			continue
		}
		out = append(out, core.Record{Date: d, Name: name, Amount: a, Category: core.Category(category)})
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate records", err)
	}
	return out, nil
}

// RewriteAll implements store.RecordRewriter inside one transaction.
func (s *Store) RewriteAll(ctx context.Context, records []core.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin rewrite", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return unavailable("clear records", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (date, name, amount, category) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return unavailable("prepare insert", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Date.String(), r.Name, core.StorageText(r.Amount), string(r.Category)); err != nil {
			return unavailable("insert record", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit rewrite", err)
	}

	slog.DebugContext(ctx, "Records rewritten in SQLite", "count", len(records))
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, core.ErrStoreUnavailable, err)
}
