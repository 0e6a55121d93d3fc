package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"25.99", "25.99", false},
		{"1,234.56", "1234.56", false},
		{"KES 1,234.56", "1234.56", false},
		{"Ksh500", "500", false},
		{"-500.00", "-500", false},
		{"1 000.00", "1000", false},
		{"0.00", "0", false},
		{"", "0", false},
		{"-", "0", false},
		{"N/A", "0", false},
		{"nan", "0", false},
		{" 25.99 ", "25.99", false},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := decimal.RequireFromString(tt.expected); !got.Equal(want) {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestCleanAmount(t *testing.T) {
	if got := cleanAmount("garbage"); !got.IsZero() {
		t.Errorf("got %s, want 0", got)
	}
	if got := cleanAmount("1,000.50"); got.String() != "1000.5" {
		t.Errorf("got %s, want 1000.5", got)
	}
}

func TestNonNegative(t *testing.T) {
	if got := nonNegative(decimal.NewFromInt(-5)); !got.IsZero() {
		t.Errorf("got %s, want 0", got)
	}
	if got := nonNegative(decimal.NewFromInt(5)); !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("got %s, want 5", got)
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{"2024-01-15 14:03:11", time.Date(2024, 1, 15, 14, 3, 11, 0, time.UTC)},
		{"2024-01-15  14:03:11", time.Date(2024, 1, 15, 14, 3, 11, 0, time.UTC)},
		{"2024-01-15 9:03", time.Date(2024, 1, 15, 9, 3, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"15/01/2024 14:03:11", time.Date(2024, 1, 15, 14, 3, 11, 0, time.UTC)},
		{"Completed 2024-01-15 14:03:11", time.Date(2024, 1, 15, 14, 3, 11, 0, time.UTC)},
		{"", time.Time{}},
		{"NaT", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseTime(tt.input)
			if !got.Equal(tt.expected) {
				t.Errorf("parseTime(%q): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMonthAndWeekLabels(t *testing.T) {
	tests := []struct {
		when  time.Time
		month string
		week  string
	}{
		{time.Date(2024, 1, 15, 14, 3, 11, 0, time.UTC), "January_24", "03_24"},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "December_23", "52_23"},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "December_24", "01_24"},
		{time.Time{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			if got := MonthLabel(tt.when); got != tt.month {
				t.Errorf("MonthLabel: got %q, want %q", got, tt.month)
			}
			if got := WeekLabel(tt.when); got != tt.week {
				t.Errorf("WeekLabel: got %q, want %q", got, tt.week)
			}
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := collapseSpaces("  Customer\tTransfer   to \n - X "); got != "Customer Transfer to - X" {
		t.Errorf("got %q", got)
	}
	if got := collapseSpaces("Customer\u00a0Transfer to\u00a0\u00a0-\u2009X"); got != "Customer Transfer to - X" {
		t.Errorf("non-breaking spaces: got %q", got)
	}
}
