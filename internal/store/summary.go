package store

import (
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

const dateLayout = "2006-01-02"

// Summarize returns one row per non-empty bucket in precedence order.
// Empty buckets are left out, unlike ClassifyAll which keeps every key.
func Summarize(b Buckets) []models.SummaryRow {
	var rows []models.SummaryRow
	b.Each(func(c models.Category, t Table) {
		if len(t) == 0 {
			return
		}
		rows = append(rows, models.SummaryRow{
			Category:         c,
			TransactionCount: t.DistinctReceipts(),
			TotalWithdrawn:   t.SumWithdrawn(),
			TotalPaidIn:      t.SumPaidIn(),
			UniqueEntities:   t.DistinctEntities(),
			DateRange:        dateRange(t),
		})
	})
	return rows
}

func dateRange(t Table) string {
	first, last, ok := t.TimeRange()
	if !ok {
		return ""
	}
	return first.Format(dateLayout) + " to " + last.Format(dateLayout)
}
