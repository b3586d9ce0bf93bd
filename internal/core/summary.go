package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   decimal.Decimal
}

// MonthBalance is the net balance of one calendar month.
type MonthBalance struct {
	Year  int
	Month time.Month
	Net   decimal.Decimal
}

// Start returns the first day of the month.
func (m MonthBalance) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Key returns the month as YYYY-MM.
func (m MonthBalance) Key() string {
	return m.Start().Format("2006-01")
}

// Summary aggregates a set of records.
type Summary struct {
	// Total is the plain additive sum of every amount.
	Total decimal.Decimal
	// Net counts income positive and everything else negative.
	Net        decimal.Decimal
	ByCategory []CategoryAmount
}

// Summarize computes totals over records. Categories appear in the order
// they are first seen.
func Summarize(records []Record) Summary {
	s := Summary{Total: decimal.Zero, Net: decimal.Zero}
	index := map[Category]int{}
	for _, r := range records {
		s.Total = s.Total.Add(r.Amount)
		s.Net = s.Net.Add(r.Signed())
		i, ok := index[r.Category]
		if !ok {
			i = len(s.ByCategory)
			index[r.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryAmount{Category: r.Category, Amount: decimal.Zero})
		}
		s.ByCategory[i].Amount = s.ByCategory[i].Amount.Add(r.Amount)
	}
	return s
}

// MonthlyBalances groups records by calendar month and returns the net
// balance of each month in chronological order.
func MonthlyBalances(records []Record) []MonthBalance {
	byMonth := map[time.Time]decimal.Decimal{}
	for _, r := range records {
		key := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		net, ok := byMonth[key]
		if !ok {
			net = decimal.Zero
		}
		byMonth[key] = net.Add(r.Signed())
	}

	out := make([]MonthBalance, 0, len(byMonth))
	for k, v := range byMonth {
		out = append(out, MonthBalance{Year: k.Year(), Month: k.Month(), Net: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start().Before(out[j].Start())
	})
	return out
}
