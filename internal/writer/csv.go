package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var transactionHeader = []string{
	"Receipt No", "Completion Time", "Details", "Paid In", "Withdrawn",
	"Month", "Week", "Type Class", "Type Desc",
	"Category", "Subcategory", "Is Charge", "Entity", "Account No",
}

var summaryHeader = []string{
	"Category", "Transaction Count", "Total Withdrawn", "Total Paid In",
	"Unique Entities", "Date Range",
}

// CSVWriter writes classified transactions to CSV format.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the classified transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo, b store.Buckets) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, info, b)
}

// Write writes one row per classified transaction, grouped by category in
// precedence order and in input order within a category. info may be nil.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo, b store.Buckets) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader && info != nil {
		for _, kv := range [][2]string{
			{"# Customer Name", info.CustomerName},
			{"# Mobile Number", info.MobileNumber},
			{"# Statement Period", info.StatementPeriod},
			{"# Request Date", info.RequestDate},
		} {
			if kv[1] == "" {
				continue
			}
			if err := writer.Write(kv[:]); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := writer.Write(transactionHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	var err error
	b.Each(func(_ models.Category, t store.Table) {
		for _, txn := range t {
			if err != nil {
				return
			}
			if werr := writer.Write(transactionRecord(txn)); werr != nil {
				err = fmt.Errorf("failed to write CSV row: %w", werr)
			}
		}
	})
	if err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

// WriteSummary writes the per-category summary table.
func (w *CSVWriter) WriteSummary(out io.Writer, rows []models.SummaryRow) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(summaryHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			string(r.Category),
			strconv.Itoa(r.TransactionCount),
			r.TotalWithdrawn.StringFixed(2),
			r.TotalPaidIn.StringFixed(2),
			strconv.Itoa(r.UniqueEntities),
			r.DateRange,
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func transactionRecord(txn models.ClassifiedTransaction) []string {
	when := ""
	if txn.HasTime() {
		when = txn.DateTime.Format(timeLayout)
	}
	return []string{
		txn.ReceiptNo,
		when,
		txn.Details,
		formatAmount(txn.PaidIn),
		formatAmount(txn.Withdrawn),
		txn.Month,
		txn.Week,
		txn.TypeClass,
		txn.TypeDesc,
		string(txn.Category),
		txn.Subcategory,
		strconv.FormatBool(txn.IsCharge),
		txn.ProcessedEntity,
		txn.AccountNo,
	}
}

func formatAmount(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return amount.StringFixed(2)
}
