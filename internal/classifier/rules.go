package classifier

import (
	"strings"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/entity"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

// fields are the lowercased inputs every predicate looks at, plus the raw
// counterparty text the normalizers work on.
type fields struct {
	details   string
	typeDesc  string
	typeClass string
	entity    string
}

// Rule is one row of the classification table.
type Rule struct {
	Category    models.Category
	Description string

	match func(f fields) bool
	apply func(out *models.ClassifiedTransaction, f fields)
}

// rules are evaluated top to bottom and the first match wins. Several
// predicates can hold for the same row, so the order decides which
// reading of the text dominates. Do not reorder.
var rules = []Rule{
	{
		Category:    models.CategoryReceivedMoney,
		Description: `type_class is "funds received from"`,
		match: func(f fields) bool {
			return f.typeClass == "funds received from"
		},
		apply: applyCounterparty,
	},
	{
		Category:    models.CategoryReceivedMoneyBusiness,
		Description: "merchant customer, salary, promotion or business payment received",
		match: func(f fields) bool {
			return f.typeClass == "merchant customer payment from" ||
				containsAny(f.typeDesc, businessIncomePhrases...) ||
				containsAny(f.typeClass, businessIncomePhrases...) ||
				strings.Contains(f.typeClass, "funds received from business")
		},
		apply: applyCounterparty,
	},
	{
		Category:    models.CategoryDeposit,
		Description: `details contain "deposit of"`,
		match: func(f fields) bool {
			return strings.Contains(f.details, "deposit of")
		},
		apply: func(out *models.ClassifiedTransaction, _ fields) {
			out.Subcategory = "deposit"
		},
	},
	{
		Category:    models.CategoryPochiIn,
		Description: "customer payment to a small business account received",
		match: func(f fields) bool {
			return f.typeClass == "customer payment to small" && f.typeDesc == "business from"
		},
		apply: applyCounterparty,
	},
	{
		Category:    models.CategoryReversals,
		Description: `details contain "reversal"`,
		match: func(f fields) bool {
			return strings.Contains(f.details, "reversal")
		},
		apply: noop,
	},
	{
		Category:    models.CategoryHustlerFund,
		Description: `details contain "term loan"`,
		match: func(f fields) bool {
			return strings.Contains(f.details, "term loan")
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.Subcategory = f.typeDesc
			out.IsCharge = strings.Contains(f.typeClass, "charge")
		},
	},
	{
		Category:    models.CategoryKCB,
		Description: `details contain "kcb m-pesa"`,
		match: func(f fields) bool {
			return strings.Contains(f.details, "kcb m-pesa")
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.Subcategory = f.typeDesc
		},
	},
	{
		Category:    models.CategoryMShwari,
		Description: `details contain "m-shwari"`,
		match: func(f fields) bool {
			return strings.Contains(f.details, "m-shwari")
		},
		apply: func(out *models.ClassifiedTransaction, _ fields) {
			out.Subcategory = "mshwari"
		},
	},
	{
		Category:    models.CategoryBusinessPaymentFromOtherSME,
		Description: "small business transfer received from another small business",
		match: func(f fields) bool {
			return strings.Contains(f.typeClass, "small business transfer to") &&
				strings.Contains(f.typeDesc, "other small business from")
		},
		apply: applyCounterparty,
	},
	{
		Category:    models.CategorySendMoney,
		Description: "customer transfer, send money, or transfer to another small business",
		match: func(f fields) bool {
			return containsAny(f.details, "customer transfer", "send money", "transfer to other small business to")
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.IsCharge = strings.Contains(f.typeDesc, "charge")
			out.Subcategory = chargeOr(out.IsCharge, "transfer")
			out.ProcessedEntity, _ = entity.MaskedPhone(f.entity)
		},
	},
	{
		Category:    models.CategoryBusinessPaymentToCustomer,
		Description: `type_class is "small business payment to"`,
		match: func(f fields) bool {
			return f.typeClass == "small business payment to"
		},
		apply: applyCounterparty,
	},
	{
		Category:    models.CategoryOverdraft,
		Description: `details contain "overdraft" or "od loan"`,
		match: func(f fields) bool {
			return containsAny(f.details, "overdraft", "od loan")
		},
		apply: func(out *models.ClassifiedTransaction, _ fields) {
			out.Subcategory = "overdraft"
		},
	},
	{
		Category:    models.CategoryBuyGoodsPayments,
		Description: `details contain "merchant payment" or "pay merchant"`,
		match: func(f fields) bool {
			return containsAny(f.details, "merchant payment", "pay merchant")
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.IsCharge = strings.Contains(f.typeClass, "charge")
			out.Subcategory = chargeOr(out.IsCharge, "")
		},
	},
	{
		Category:    models.CategoryPayBillPayments,
		Description: `details contain "pay bill"`,
		match: func(f fields) bool {
			return strings.Contains(f.details, "pay bill")
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.IsCharge = strings.Contains(f.typeClass, "charge")
			out.Subcategory = chargeOr(out.IsCharge, "")
			out.ProcessedEntity, out.AccountNo = entity.Paybill(f.entity)
		},
	},
	{
		Category:    models.CategoryPochi,
		Description: `details contain "customer payment to small business to"`,
		match: func(f fields) bool {
			return strings.Contains(f.details, "customer payment to small business to")
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.Subcategory = "pochi"
			out.ProcessedEntity, _ = entity.MaskedPhone(f.entity)
		},
	},
	{
		Category:    models.CategoryCashWithdrawals,
		Description: `details contain "withdrawal" and type_desc does not start with "from"`,
		match: func(f fields) bool {
			return strings.Contains(f.details, "withdrawal") && !strings.HasPrefix(f.typeDesc, "from")
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.IsCharge = strings.Contains(f.details, "charge")
			out.Subcategory = chargeOr(out.IsCharge, "withdrawal")
		},
	},
	{
		Category:    models.CategoryAirtimeBundle,
		Description: "airtime or bundle purchase",
		match: func(f fields) bool {
			return strings.Contains(f.details, "airtime") ||
				strings.Contains(f.typeDesc, "bundles") ||
				strings.Contains(f.details, "bundle")
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.Subcategory = "purchase"
			out.ProcessedEntity, _ = entity.MaskedPhone(f.entity)
		},
	},
	{
		Category:    models.CategoryNoDetails,
		Description: "details missing",
		match: func(f fields) bool {
			return f.details == models.MissingDetails
		},
		apply: noop,
	},
	{
		Category:    models.CategoryUncategorized,
		Description: "fallback",
		match: func(fields) bool {
			return true
		},
		apply: func(out *models.ClassifiedTransaction, f fields) {
			out.Subcategory = "unknown"
			if entity.StartsNumeric(f.entity, 2) {
				out.ProcessedEntity, _ = entity.MaskedPhone(f.entity)
			} else {
				out.ProcessedEntity = "non"
			}
		},
	},
}

var businessIncomePhrases = []string{
	"salary payment from",
	"promotion payment from",
	"business payment from",
}

// applyCounterparty fills the counterparty for rules where it may be a
// person (masked phone) or a business (channel suffix).
func applyCounterparty(out *models.ClassifiedTransaction, f fields) {
	out.ProcessedEntity, out.AccountNo = entity.Select(f.entity)
}

func noop(*models.ClassifiedTransaction, fields) {}

func chargeOr(isCharge bool, otherwise string) string {
	if isCharge {
		return "charge"
	}
	return otherwise
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
