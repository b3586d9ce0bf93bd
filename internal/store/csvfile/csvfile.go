// Package csvfile stores records in a flat comma separated file: one record
// per line, fields date,name,amount,category, no header.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"expensetracker/internal/core"
	"expensetracker/internal/store"
)

// DefaultPath is the backing file used when none is configured.
const DefaultPath = "expenses.csv"

const fieldCount = 4

var _ store.Store = (*Store)(nil)

type Store struct {
	path    string
	skipped atomic.Int64
}

func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// LastSkipped returns how many lines the most recent LoadAll dropped.
func (s *Store) LastSkipped() int {
	return int(s.skipped.Load())
}

// Append writes one line at the end of the file, creating it if needed.
func (s *Store) Append(ctx context.Context, r core.Record) error {
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return unavailable("open for append", err)
	}
	defer f.Close()

	if err := ensureTrailingNewline(f); err != nil {
		return unavailable("append", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(encode(r)); err != nil {
		return unavailable("append", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return unavailable("append", err)
	}
	if err := f.Close(); err != nil {
		return unavailable("close", err)
	}

	slog.DebugContext(ctx, "Record appended", "path", s.path, "name", r.Name)
	return nil
}

// LoadAll parses every line with exactly four fields. Lines with another
// field count, or with an unparseable date or amount, are dropped and logged.
// A missing file is an empty store.
func (s *Store) LoadAll(ctx context.Context) ([]core.Record, error) {
	s.skipped.Store(0)

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("open", err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true

	var (
		out     []core.Record
		skipped int64
	)
	for {
		fields, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped++
				slog.WarnContext(ctx, "Skipping unreadable line", "path", s.path, "line", pe.Line, "error", err)
				continue
			}
			return nil, unavailable("read", err)
		}

		line, _ := rd.FieldPos(0)
		if len(fields) != fieldCount {
			skipped++
			slog.WarnContext(ctx, "Skipping line with wrong field count",
				"path", s.path, "line", line, "fields", len(fields))
			continue
		}
		r, err := decode(fields)
		if err != nil {
			skipped++
			slog.WarnContext(ctx, "Skipping malformed record", "path", s.path, "line", line, "error", err)
			continue
		}
		out = append(out, r)
	}

	s.skipped.Store(skipped)
	return out, nil
}

// RewriteAll replaces the file content. The new content is written to a
// temporary file in the same directory and renamed over the old one.
func (s *Store) RewriteAll(ctx context.Context, records []core.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".records-*.tmp")
	if err != nil {
		return unavailable("create temp file", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	for _, r := range records {
		if err := w.Write(encode(r)); err != nil {
			return unavailable("rewrite", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return unavailable("rewrite", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return unavailable("rewrite", err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable("rewrite", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return unavailable("replace", err)
	}
	committed = true

	slog.DebugContext(ctx, "Records rewritten", "path", s.path, "count", len(records))
	return nil
}

func encode(r core.Record) []string {
	return []string{r.Date.String(), r.Name, core.StorageText(r.Amount), string(r.Category)}
}

func decode(fields []string) (core.Record, error) {
	date, err := core.ParseDate(fields[0])
	if err != nil {
		return core.Record{}, err
	}
	amount, err := core.ParseAmount(fields[2])
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		Date:     date,
		Name:     fields[1],
		Amount:   amount,
		Category: core.Category(fields[3]),
	}, nil
}

// ensureTrailingNewline keeps a hand-edited file without a final newline
// from merging its last line with the next appended record.
func ensureTrailingNewline(f *os.File) error {
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.Size() == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, fi.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte("\n"))
	return err
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, core.ErrStoreUnavailable, err)
}
