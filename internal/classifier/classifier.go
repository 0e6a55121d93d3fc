// Package classifier assigns each cleaned statement row to exactly one
// category using an ordered rule table, and extracts the normalized
// counterparty, account reference and charge flag on the way.
//
// Classification is a pure function of the row: no state is kept between
// rows and the same input always yields the same output.
package classifier

import (
	"strings"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

// Classify categorizes a single transaction. It never fails: rows matching
// no specific rule land in models.CategoryUncategorized.
func Classify(txn models.Transaction) models.ClassifiedTransaction {
	f := fieldsOf(txn)

	out := models.ClassifiedTransaction{
		Transaction:     txn,
		ProcessedEntity: txn.Entity,
	}

	for _, r := range rules {
		if !r.match(f) {
			continue
		}
		out.Category = r.Category
		r.apply(&out, f)
		return out
	}

	// unreachable: the last rule always matches
	out.Category = models.CategoryUncategorized
	return out
}

// Match returns the rule that Classify would apply to txn.
func Match(txn models.Transaction) Rule {
	f := fieldsOf(txn)
	for _, r := range rules {
		if r.match(f) {
			return r
		}
	}
	return rules[len(rules)-1]
}

// Rules returns a copy of the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func fieldsOf(txn models.Transaction) fields {
	details := strings.ToLower(strings.TrimSpace(txn.Details))
	switch details {
	case models.MissingDetails:
		// The cleaning stage marked the details as missing, so any type
		// tokens on the row did not come from them.
		return fields{details: models.MissingDetails, entity: txn.Entity}
	case "":
		details = models.MissingDetails
	}
	return fields{
		details:   details,
		typeDesc:  strings.ToLower(txn.TypeDesc),
		typeClass: strings.ToLower(txn.TypeClass),
		entity:    txn.Entity,
	}
}
