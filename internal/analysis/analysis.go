// Package analysis turns category buckets into per-category reports:
// principal and charge totals plus a breakdown by counterparty.
package analysis

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/store"
)

// DefaultTopN is the number of largest transactions listed per report.
const DefaultTopN = 10

// EntityTotal aggregates the principal rows of one counterparty.
type EntityTotal struct {
	Entity   string          `json:"entity"`
	Count    int             `json:"count"`
	Amount   decimal.Decimal `json:"amount"`
	Accounts string          `json:"accounts,omitempty"`
}

// Report summarizes one category.
type Report struct {
	Category  models.Category                `json:"category"`
	Direction models.Direction               `json:"direction"`
	Stub      bool                           `json:"stub"`
	Rows      int                            `json:"rows"`
	Count     int                            `json:"count"`
	Total     decimal.Decimal                `json:"total"`
	Charges   decimal.Decimal                `json:"charges"`
	Entities  []EntityTotal                  `json:"entities,omitempty"`
	Top       []models.ClassifiedTransaction `json:"top,omitempty"`
}

// Analyze builds the report for category c. Charge rows are kept out of the
// principal total, count and breakdown and summed into Charges instead.
// Categories whose semantics are still open only get their row count.
func Analyze(b store.Buckets, c models.Category, topN int) Report {
	t := b.Get(c)
	r := Report{
		Category:  c,
		Direction: c.Direction(),
		Stub:      c.Stub(),
		Rows:      len(t),
		Total:     decimal.Zero,
		Charges:   decimal.Zero,
	}
	if len(t) == 0 || r.Stub {
		return r
	}

	amount := amountFunc(r.Direction)
	principal := t.Principal()
	for _, row := range t.Charges() {
		r.Charges = r.Charges.Add(amount(row))
	}
	for _, row := range principal {
		r.Total = r.Total.Add(amount(row))
	}
	r.Count = principal.DistinctReceipts()
	r.Entities = breakdown(principal, amount, c == models.CategoryPayBillPayments)
	sortEntities(r.Entities, sortByAmount(c))
	r.Top = largest(principal, amount, topN)
	return r
}

// AnalyzeAll reports on every non-empty category in precedence order.
func AnalyzeAll(b store.Buckets, topN int) []Report {
	var out []Report
	b.Each(func(c models.Category, t store.Table) {
		if len(t) > 0 {
			out = append(out, Analyze(b, c, topN))
		}
	})
	return out
}

type amountOf func(models.ClassifiedTransaction) decimal.Decimal

// amountFunc picks the column that carries the movement. Rows that can go
// either way count both columns.
func amountFunc(d models.Direction) amountOf {
	switch d {
	case models.DirectionIn:
		return func(row models.ClassifiedTransaction) decimal.Decimal { return row.PaidIn }
	case models.DirectionOut:
		return func(row models.ClassifiedTransaction) decimal.Decimal { return row.Withdrawn }
	default:
		return func(row models.ClassifiedTransaction) decimal.Decimal { return row.PaidIn.Add(row.Withdrawn) }
	}
}

func sortByAmount(c models.Category) bool {
	switch c {
	case models.CategoryDeposit, models.CategoryCashWithdrawals, models.CategoryAirtimeBundle:
		return true
	}
	return false
}

func breakdown(t store.Table, amount amountOf, withAccounts bool) []EntityTotal {
	index := make(map[string]int)
	accounts := make(map[string][]string)
	var out []EntityTotal

	for _, row := range t {
		i, ok := index[row.ProcessedEntity]
		if !ok {
			i = len(out)
			index[row.ProcessedEntity] = i
			out = append(out, EntityTotal{Entity: row.ProcessedEntity, Amount: decimal.Zero})
		}
		out[i].Count++
		out[i].Amount = out[i].Amount.Add(amount(row))

		if withAccounts && row.AccountNo != "" && !contains(accounts[row.ProcessedEntity], row.AccountNo) {
			accounts[row.ProcessedEntity] = append(accounts[row.ProcessedEntity], row.AccountNo)
		}
	}

	if withAccounts {
		for i := range out {
			out[i].Accounts = strings.Join(accounts[out[i].Entity], ", ")
		}
	}
	return out
}

func sortEntities(es []EntityTotal, byAmount bool) {
	sort.SliceStable(es, func(i, j int) bool {
		a, b := es[i], es[j]
		if byAmount {
			if !a.Amount.Equal(b.Amount) {
				return a.Amount.GreaterThan(b.Amount)
			}
			return a.Count > b.Count
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Amount.GreaterThan(b.Amount)
	})
}

func largest(t store.Table, amount amountOf, n int) []models.ClassifiedTransaction {
	if n <= 0 || len(t) == 0 {
		return nil
	}
	rows := make([]models.ClassifiedTransaction, len(t))
	copy(rows, t)
	sort.SliceStable(rows, func(i, j int) bool {
		return amount(rows[i]).GreaterThan(amount(rows[j]))
	})
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
