package store

import (
	"sort"
	"time"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

// MonthFilterLayout is the label format accepted by FilterMonths, e.g. "January_2024".
const MonthFilterLayout = "January_2006"

// FilterDateRange keeps rows whose completion date falls between from and to,
// both inclusive and compared as calendar days. A zero bound is open.
// Rows without a time never match a bounded filter. With both bounds zero
// the input is returned as is.
func FilterDateRange(b Buckets, from, to time.Time) Buckets {
	if from.IsZero() && to.IsZero() {
		return b
	}
	lo, hi := day(from), day(to)
	return b.filter(func(row models.ClassifiedTransaction) bool {
		if !row.HasTime() {
			return false
		}
		d := day(row.DateTime)
		if !from.IsZero() && d.Before(lo) {
			return false
		}
		if !to.IsZero() && d.After(hi) {
			return false
		}
		return true
	})
}

// FilterMonths keeps rows whose completion time formats as one of months
// (MonthFilterLayout). An empty list returns the input as is.
func FilterMonths(b Buckets, months []string) Buckets {
	if len(months) == 0 {
		return b
	}
	want := make(map[string]struct{}, len(months))
	for _, m := range months {
		want[m] = struct{}{}
	}
	return b.filter(func(row models.ClassifiedTransaction) bool {
		if !row.HasTime() {
			return false
		}
		_, ok := want[row.DateTime.Format(MonthFilterLayout)]
		return ok
	})
}

// Months lists the distinct month labels present, oldest first.
func Months(b Buckets) []string {
	seen := make(map[string]struct{})
	var firsts []time.Time
	b.Each(func(_ models.Category, t Table) {
		for _, row := range t {
			if !row.HasTime() {
				continue
			}
			label := row.DateTime.Format(MonthFilterLayout)
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			firsts = append(firsts, time.Date(row.DateTime.Year(), row.DateTime.Month(), 1, 0, 0, 0, 0, time.UTC))
		}
	})
	sort.Slice(firsts, func(i, j int) bool { return firsts[i].Before(firsts[j]) })
	out := make([]string, len(firsts))
	for i, t := range firsts {
		out[i] = t.Format(MonthFilterLayout)
	}
	return out
}

func (b Buckets) filter(keep func(models.ClassifiedTransaction) bool) Buckets {
	out := NewBuckets()
	b.Each(func(c models.Category, t Table) {
		out[c] = t.Where(keep)
	})
	return out
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
