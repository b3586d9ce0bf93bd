package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func rec(date Date, name, amount string, c Category) Record {
	return Record{Date: date, Name: name, Amount: decimal.RequireFromString(amount), Category: c}
}

func TestSummarize(t *testing.T) {
	records := []Record{
		rec(NewDate(2024, 1, 5), "Coffee", "4.50", Food),
		rec(NewDate(2024, 1, 6), "Paycheck", "1000.00", Income),
		rec(NewDate(2024, 1, 7), "Lunch", "10", Food),
	}
	s := Summarize(records)
	if !s.Total.Equal(decimal.RequireFromString("1014.50")) {
		t.Fatalf("total = %s", s.Total)
	}
	if !s.Net.Equal(decimal.RequireFromString("985.50")) {
		t.Fatalf("net = %s", s.Net)
	}
	if len(s.ByCategory) != 2 || s.ByCategory[0].Category != Food || !s.ByCategory[0].Amount.Equal(decimal.RequireFromString("14.5")) {
		t.Fatalf("unexpected by-category: %+v", s.ByCategory)
	}

	empty := Summarize(nil)
	if !empty.Total.IsZero() || !empty.Net.IsZero() || len(empty.ByCategory) != 0 {
		t.Fatalf("unexpected empty summary: %+v", empty)
	}
}

func TestMonthlyBalances(t *testing.T) {
	records := []Record{
		rec(NewDate(2024, 2, 1), "Rent", "500", Rent),
		rec(NewDate(2024, 1, 5), "Coffee", "4.50", Food),
		rec(NewDate(2024, 1, 6), "Paycheck", "1000.00", Income),
		rec(NewDate(2023, 12, 31), "Party", "20", Entertainment),
	}
	got := MonthlyBalances(records)
	want := []struct {
		key string
		net string
	}{
		{"2023-12", "-20"},
		{"2024-01", "995.50"},
		{"2024-02", "-500"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d months, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Key() != w.key || !got[i].Net.Equal(decimal.RequireFromString(w.net)) {
			t.Fatalf("month %d: got %s=%s, want %s=%s", i, got[i].Key(), got[i].Net, w.key, w.net)
		}
	}
	if got[1].Month != time.January || got[1].Year != 2024 {
		t.Fatalf("unexpected month fields: %+v", got[1])
	}
}
