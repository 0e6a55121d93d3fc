package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Completion times on M-Pesa statements: "2024-01-15 14:03:11".
var (
	dateTimePattern = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}\s+\d{1,2}:\d{2}(?::\d{2})?)\b`)
	whitespaceRun   = regexp.MustCompile(`[\s\p{Zs}]+`) // includes NBSP
)

// timeLayouts are tried in order when parsing a completion time cell.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02 Jan 2006 15:04:05",
	"02 Jan 2006",
}

// emptyAmounts are cell values that mean "no amount".
var emptyAmounts = map[string]bool{
	"":    true,
	"-":   true,
	"N/A": true,
	"nan": true,
}

// parseAmount converts a string like "1,234.56" or "-500.00" to a decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00A0", "") // non-breaking space
	s = strings.TrimPrefix(s, "KES")
	s = strings.TrimPrefix(s, "Ksh")

	if emptyAmounts[s] {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// cleanAmount is parseAmount for cells where garbage means zero.
func cleanAmount(s string) decimal.Decimal {
	d, err := parseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseTime returns the zero time when s matches no known layout.
func parseTime(s string) time.Time {
	s = collapseSpaces(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	// cells sometimes carry the time with surrounding text
	if m := dateTimePattern.FindString(s); m != "" && m != s {
		return parseTime(m)
	}
	return time.Time{}
}

// MonthLabel formats t as "January_24". Unset times give "".
func MonthLabel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%02d", t.Month().String(), t.Year()%100)
}

// WeekLabel formats t as its ISO week and two-digit calendar year, e.g. "03_24".
func WeekLabel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	_, week := t.ISOWeek()
	return fmt.Sprintf("%02d_%02d", week, t.Year()%100)
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// nonNegative clamps d at zero.
func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
