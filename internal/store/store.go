// Package store partitions classified transactions into per-category
// buckets and derives the summary table from them.
//
// Buckets are built in one pass by ClassifyAll and never mutated after
// that. Filters return new buckets instead of editing existing ones.
package store

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/classifier"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

// Table is the ordered content of one bucket, in input order.
type Table []models.ClassifiedTransaction

// Where returns the rows for which keep returns true.
func (t Table) Where(keep func(models.ClassifiedTransaction) bool) Table {
	out := Table{}
	for _, row := range t {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// Principal returns the rows that are not charges.
func (t Table) Principal() Table {
	return t.Where(func(row models.ClassifiedTransaction) bool { return !row.IsCharge })
}

// Charges returns the fee rows.
func (t Table) Charges() Table {
	return t.Where(func(row models.ClassifiedTransaction) bool { return row.IsCharge })
}

// DistinctReceipts counts unique receipt numbers.
func (t Table) DistinctReceipts() int {
	seen := make(map[string]struct{}, len(t))
	for _, row := range t {
		seen[row.ReceiptNo] = struct{}{}
	}
	return len(seen)
}

// DistinctEntities counts unique processed counterparties.
func (t Table) DistinctEntities() int {
	seen := make(map[string]struct{}, len(t))
	for _, row := range t {
		seen[row.ProcessedEntity] = struct{}{}
	}
	return len(seen)
}

// SumPaidIn totals the paid-in column.
func (t Table) SumPaidIn() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range t {
		sum = sum.Add(row.PaidIn)
	}
	return sum
}

// SumWithdrawn totals the withdrawn column.
func (t Table) SumWithdrawn() decimal.Decimal {
	sum := decimal.Zero
	for _, row := range t {
		sum = sum.Add(row.Withdrawn)
	}
	return sum
}

// TimeRange returns the earliest and latest set completion times. ok is
// false when no row has a time.
func (t Table) TimeRange() (first, last time.Time, ok bool) {
	for _, row := range t {
		if !row.HasTime() {
			continue
		}
		if !ok || row.DateTime.Before(first) {
			first = row.DateTime
		}
		if !ok || row.DateTime.After(last) {
			last = row.DateTime
		}
		ok = true
	}
	return first, last, ok
}

// Buckets maps every category to its table. All categories are present;
// categories without rows map to an empty table.
type Buckets map[models.Category]Table

// NewBuckets returns buckets with every category mapped to an empty table.
func NewBuckets() Buckets {
	b := make(Buckets, len(models.Categories()))
	for _, c := range models.Categories() {
		b[c] = Table{}
	}
	return b
}

// Get returns the table for c. Unknown categories give an empty table.
func (b Buckets) Get(c models.Category) Table {
	if t, ok := b[c]; ok {
		return t
	}
	return Table{}
}

// Len is the number of rows across all buckets.
func (b Buckets) Len() int {
	n := 0
	for _, t := range b {
		n += len(t)
	}
	return n
}

// Each calls fn for every category in precedence order.
func (b Buckets) Each(fn func(c models.Category, t Table)) {
	for _, c := range models.Categories() {
		fn(c, b.Get(c))
	}
}

// Store classifies transactions into buckets.
type Store struct {
	log zerolog.Logger
}

// New creates a Store that reports diagnostics to log.
func New(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// ClassifyAll classifies every transaction and appends it to its category's
// bucket, keeping input order within each bucket.
func (s *Store) ClassifyAll(txns []models.Transaction) Buckets {
	b := NewBuckets()
	for _, txn := range txns {
		row := classifier.Classify(txn)
		b[row.Category] = append(b[row.Category], row)
	}

	if e := s.log.Debug(); e.Enabled() {
		counts := zerolog.Dict()
		b.Each(func(c models.Category, t Table) {
			if len(t) > 0 {
				counts.Int(string(c), len(t))
			}
		})
		e.Int("rows", len(txns)).Dict("categories", counts).Msg("classified transactions")
	}

	if unknown := b.Get(models.CategoryUncategorized); len(unknown) > 0 {
		s.log.Warn().
			Int("count", len(unknown)).
			Strs("type_classes", distinctTypeClasses(unknown)).
			Msg("uncategorized transactions need manual review")
	}

	return b
}

// ClassifyAll classifies txns without logging.
func ClassifyAll(txns []models.Transaction) Buckets {
	return New(zerolog.Nop()).ClassifyAll(txns)
}

func distinctTypeClasses(t Table) []string {
	seen := make(map[string]struct{})
	for _, row := range t {
		seen[row.TypeClass] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for tc := range seen {
		out = append(out, tc)
	}
	sort.Strings(out)
	return out
}
