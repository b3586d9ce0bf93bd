// Package core provides the record model, entry validation and amount handling.
//
// This file contains parsing and formatting of monetary amounts. Amounts are
// kept as exact decimals end to end; the currency prefix exists only in
// FormatAmount output and is never parsed back.
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes displayed amounts.
const CurrencySymbol = "$"

var amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount converts a base-10 decimal string to an exact decimal.
//
// Signs and a bare leading or trailing dot are accepted; exponents, currency
// symbols and thousands separators are not.
//
// Examples:
//
//	ParseAmount("4.50")  -> 4.5, nil
//	ParseAmount("-12")   -> -12, nil
//	ParseAmount(".5")    -> 0.5, nil
//	ParseAmount("$4.50") -> error
//	ParseAmount("1e3")   -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatAmount renders an amount for display, e.g. "$4.50".
func FormatAmount(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

// StorageText is the text an amount is persisted as. The scale it was parsed
// with is kept, so "4.50" and "1000.0" are written back unchanged.
func StorageText(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
