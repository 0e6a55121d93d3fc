package parser

import (
	"strings"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

// Clean prepares raw rows for classification: it normalizes whitespace in
// the details, marks missing details, splits the details into type and
// counterparty, and derives the month and week labels. Input order is kept.
func Clean(rows []models.RawTransaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, CleanRow(row))
	}
	return out
}

// CleanRow is Clean for a single row.
func CleanRow(row models.RawTransaction) models.Transaction {
	row.ReceiptNo = strings.TrimSpace(row.ReceiptNo)
	row.Details = collapseSpaces(row.Details)
	row.PaidIn = nonNegative(row.PaidIn)
	row.Withdrawn = row.Withdrawn.Abs()

	txn := models.Transaction{
		RawTransaction: row,
		Month:          MonthLabel(row.DateTime),
		Week:           WeekLabel(row.DateTime),
	}

	if row.Details == "" || strings.EqualFold(row.Details, models.MissingDetails) {
		// Type tokens come from the details; without details there are none.
		txn.Details = models.MissingDetails
		txn.Entity = models.MissingDetails
		return txn
	}

	txn.Type, txn.Entity = SplitDetails(row.Details)
	txn.TypeClass, txn.TypeDesc = SplitType(txn.Type)
	return txn
}
