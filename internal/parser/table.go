package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

// Standard column names after normalization.
const (
	ColumnReceiptNo = "receipt_no"
	ColumnDateTime  = "date_time"
	ColumnDetails   = "details"
	ColumnPaidIn    = "paid_in"
	ColumnWithdrawn = "withdrawn"
)

// expectedColumns are the normalized header cells of an M-Pesa transaction table.
// Anything else ("balance", stray index columns) is dropped.
var expectedColumns = map[string]bool{
	"receiptno.":        true,
	"receiptno":         true,
	"completiontime":    true,
	"details":           true,
	"transactionstatus": true,
	"paidin":            true,
	"withdrawn":         true,
	"withdraw":          true,
}

// NormalizeColumnName lowercases a header cell and strips all whitespace.
func NormalizeColumnName(name string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(name), ""))
}

// MapColumns maps header cells to standard column names, returning the index
// of each standard column. Unknown columns are left out; the first cell that
// maps to a given name wins.
func MapColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, cell := range header {
		name := NormalizeColumnName(cell)
		if !expectedColumns[name] {
			continue
		}
		std := standardColumn(name)
		if std == "" {
			continue
		}
		if _, dup := cols[std]; !dup {
			cols[std] = i
		}
	}
	return cols
}

func standardColumn(name string) string {
	switch {
	case strings.Contains(name, "receipt") || strings.Contains(name, "ref"):
		return ColumnReceiptNo
	case strings.Contains(name, "completion") || strings.Contains(name, "time"):
		return ColumnDateTime
	case strings.Contains(name, "detail"):
		return ColumnDetails
	case strings.Contains(name, "paid") && strings.Contains(name, "in"):
		return ColumnPaidIn
	case strings.Contains(name, "withdrawn") || strings.Contains(name, "withdr"):
		return ColumnWithdrawn
	}
	return ""
}

// ParseTable converts a header row and data records into raw transactions.
// Rows shorter than the header are padded with empty cells. Rows that repeat
// the header (page breaks in exported tables) are skipped.
func ParseTable(header []string, records [][]string) ([]models.RawTransaction, error) {
	cols := MapColumns(header)
	if _, ok := cols[ColumnReceiptNo]; !ok {
		return nil, fmt.Errorf("%w: no receipt number column in %v", ErrMissingColumns, header)
	}
	if _, ok := cols[ColumnDetails]; !ok {
		return nil, fmt.Errorf("%w: no details column in %v", ErrMissingColumns, header)
	}

	cell := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]models.RawTransaction, 0, len(records))
	for _, rec := range records {
		if isHeaderRecord(rec) {
			continue
		}
		rows = append(rows, models.RawTransaction{
			ReceiptNo: cell(rec, ColumnReceiptNo),
			DateTime:  parseTime(cell(rec, ColumnDateTime)),
			Details:   cell(rec, ColumnDetails),
			PaidIn:    nonNegative(cleanAmount(cell(rec, ColumnPaidIn))),
			Withdrawn: cleanAmount(cell(rec, ColumnWithdrawn)).Abs(),
		})
	}
	return rows, nil
}

// ReadCSV parses a CSV export whose first record is the header. Lines
// starting with '#' are ignored, so classified output can be read back.
func ReadCSV(r io.Reader) ([]models.RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#' // metadata rows written above the header

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty CSV", ErrMissingColumns)
	}
	return ParseTable(records[0], records[1:])
}

func isHeaderRecord(rec []string) bool {
	return len(MapColumns(rec)) >= 2
}
