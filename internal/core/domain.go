package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and display form of a record date.
const DateLayout = "2006-01-02"

const (
	Income        Category = "Income"
	Food          Category = "Food"
	Transport     Category = "Transport"
	Groceries     Category = "Groceries"
	Rent          Category = "Rent"
	Entertainment Category = "Entertainment"
	Other         Category = "Other"

	// FilterAll is the filter value that shows every row.
	FilterAll = "All"
)

type (
	Category string

	Date struct {
		time.Time
	}

	// Record is one expense or income entry.
	Record struct {
		Date     Date
		Name     string
		Amount   decimal.Decimal
		Category Category
	}

	// Entry is the raw, unvalidated form input for a new record.
	Entry struct {
		Date     string
		Name     string
		Amount   string
		Category string
	}
)

var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrNoSelection      = errors.New("no row selected")
	ErrRowOutOfRange    = errors.New("row index out of range")
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrNoData           = errors.New("no data")
	ErrExportCancelled  = errors.New("export cancelled")
)

// Categories lists the selectable categories in display order.
func Categories() []Category {
	return []Category{Income, Food, Transport, Groceries, Rent, Entertainment, Other}
}

// FilterOptions returns the filter selector values, FilterAll first.
func FilterOptions() []string {
	out := []string{FilterAll}
	for _, c := range Categories() {
		out = append(out, string(c))
	}
	return out
}

// Known reports whether c is one of the selectable categories.
func (c Category) Known() bool {
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

// IsIncome reports whether records of this category count as inflow.
func (c Category) IsIncome() bool {
	return c == Income
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrInvalidDate)
	}
	return nil
}

// Equal compares every field; amounts are compared numerically.
func (r Record) Equal(o Record) bool {
	return r.Date.String() == o.Date.String() &&
		r.Name == o.Name &&
		r.Category == o.Category &&
		r.Amount.Equal(o.Amount)
}

// Signed returns the amount as a contribution to the net balance:
// income counts positive, every other category negative.
func (r Record) Signed() decimal.Decimal {
	if r.Category.IsIncome() {
		return r.Amount
	}
	return r.Amount.Neg()
}

func (r Record) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	return nil
}

// ValidateEntry checks raw form input and builds a Record from it.
// An empty date means today and an empty category means Other.
func ValidateEntry(e Entry, today Date) (Record, error) {
	name := strings.TrimSpace(e.Name)
	amount := strings.TrimSpace(e.Amount)
	if name == "" || amount == "" {
		return Record{}, ErrMissingField
	}

	value, err := ParseAmount(amount)
	if err != nil {
		return Record{}, err
	}

	date := today
	if strings.TrimSpace(e.Date) != "" {
		if date, err = ParseDate(e.Date); err != nil {
			return Record{}, err
		}
	}

	category := Category(strings.TrimSpace(e.Category))
	if category == "" {
		category = Other
	}

	r := Record{Date: date, Name: name, Amount: value, Category: category}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}
