// Package ui prints colored progress and result output for the CLI.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

const width = 78

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	cyan   = color.New(color.FgCyan, color.Bold)
	red    = color.New(color.FgRed)
)

// Printer writes CLI messages to w.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w. Use color.Error to keep stdout free
// for CSV output.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Header prints a formatted header
func (p *Printer) Header(text string) {
	line := strings.Repeat("=", width)
	green.Fprintf(p.w, "\n%s\n", line)
	green.Fprintf(p.w, "%s\n", center(text, width))
	green.Fprintf(p.w, "%s\n\n", line)
}

// Step prints a step indicator
func (p *Printer) Step(stepNum, totalSteps int, text string) {
	yellow.Fprintf(p.w, "[%d/%d] %s\n", stepNum, totalSteps, text)
}

// Success prints a success message
func (p *Printer) Success(text string) {
	green.Fprintf(p.w, "  → %s\n", text)
}

// Info prints an info message
func (p *Printer) Info(text string) {
	fmt.Fprintf(p.w, "  → %s\n", text)
}

// Warning prints a warning message
func (p *Printer) Warning(text string) {
	yellow.Fprintf(p.w, "  ⚠ %s\n", text)
}

// Error prints an error message
func (p *Printer) Error(text string) {
	red.Fprintf(p.w, "Error: %s\n", text)
}

// SummaryTable prints the per-category summary with a totals line.
func (p *Printer) SummaryTable(rows []models.SummaryRow) {
	if len(rows) == 0 {
		p.Warning("no transactions")
		return
	}

	catWidth := len("Category")
	for _, r := range rows {
		if n := len(r.Category); n > catWidth {
			catWidth = n
		}
	}

	cyan.Fprintf(p.w, "%-*s %6s %14s %14s %8s  %s\n",
		catWidth, "Category", "Count", "Paid In", "Withdrawn", "Entities", "Date Range")

	totalCount := 0
	totalIn, totalOut := decimal.Zero, decimal.Zero
	for _, r := range rows {
		fmt.Fprintf(p.w, "%-*s %6d %14s %14s %8d  %s\n",
			catWidth, r.Category, r.TransactionCount,
			r.TotalPaidIn.StringFixed(2), r.TotalWithdrawn.StringFixed(2),
			r.UniqueEntities, r.DateRange)
		totalCount += r.TransactionCount
		totalIn = totalIn.Add(r.TotalPaidIn)
		totalOut = totalOut.Add(r.TotalWithdrawn)
	}

	green.Fprintf(p.w, "%-*s %6d %14s %14s\n",
		catWidth, "Total", totalCount, totalIn.StringFixed(2), totalOut.StringFixed(2))
}

// center centers text within a given width
func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
