package models

// Category is one of the fixed transaction categories.
type Category string

// Categories in rule precedence order.
const (
	CategoryReceivedMoney               Category = "ReceivedMoney"
	CategoryReceivedMoneyBusiness       Category = "ReceivedMoney_business"
	CategoryDeposit                     Category = "Deposit"
	CategoryPochiIn                     Category = "Pochi_in"
	CategoryReversals                   Category = "Reversals"
	CategoryHustlerFund                 Category = "HustlerFund"
	CategoryKCB                         Category = "KCB"
	CategoryMShwari                     Category = "MShwari"
	CategoryBusinessPaymentFromOtherSME Category = "businessPayment_fromOtherSME"
	CategorySendMoney                   Category = "SendMoney"
	CategoryBusinessPaymentToCustomer   Category = "businessPayment_toCustomer"
	CategoryOverdraft                   Category = "Overdraft"
	CategoryBuyGoodsPayments            Category = "BuyGoodsPayments"
	CategoryPayBillPayments             Category = "PayBillPayments"
	CategoryPochi                       Category = "Pochi"
	CategoryCashWithdrawals             Category = "CashWithdrawals"
	CategoryAirtimeBundle               Category = "airtime_bundle"
	CategoryNoDetails                   Category = "NoDetails"
	CategoryUncategorized               Category = "uncategorized"
)

var allCategories = []Category{
	CategoryReceivedMoney,
	CategoryReceivedMoneyBusiness,
	CategoryDeposit,
	CategoryPochiIn,
	CategoryReversals,
	CategoryHustlerFund,
	CategoryKCB,
	CategoryMShwari,
	CategoryBusinessPaymentFromOtherSME,
	CategorySendMoney,
	CategoryBusinessPaymentToCustomer,
	CategoryOverdraft,
	CategoryBuyGoodsPayments,
	CategoryPayBillPayments,
	CategoryPochi,
	CategoryCashWithdrawals,
	CategoryAirtimeBundle,
	CategoryNoDetails,
	CategoryUncategorized,
}

var categoryIndex = func() map[Category]int {
	m := make(map[Category]int, len(allCategories))
	for i, c := range allCategories {
		m[c] = i
	}
	return m
}()

// Categories returns every category in precedence order. The slice is a copy.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryIndex[c]
	return ok
}

// Order returns the precedence position of c, or -1 for an unknown category.
func (c Category) Order() int {
	if i, ok := categoryIndex[c]; ok {
		return i
	}
	return -1
}

// Direction describes which amount column carries a category's principal movement.
type Direction string

const (
	DirectionIn    Direction = "in"
	DirectionOut   Direction = "out"
	DirectionOther Direction = "other"
)

// Direction groups categories the way the statement dashboard does:
// money in, money out, and rows that can go either way.
func (c Category) Direction() Direction {
	switch c {
	case CategoryReceivedMoney, CategoryReceivedMoneyBusiness, CategoryDeposit,
		CategoryPochiIn, CategoryBusinessPaymentFromOtherSME:
		return DirectionIn
	case CategorySendMoney, CategoryBusinessPaymentToCustomer, CategoryBuyGoodsPayments,
		CategoryPayBillPayments, CategoryPochi, CategoryCashWithdrawals, CategoryAirtimeBundle:
		return DirectionOut
	default:
		return DirectionOther
	}
}

// Stub reports whether the category's analysis is still placeholder-only.
// These categories match reliably but their counterparty and charge
// semantics have not been worked out from real statements yet.
func (c Category) Stub() bool {
	switch c {
	case CategoryReversals, CategoryHustlerFund, CategoryKCB, CategoryMShwari,
		CategoryBusinessPaymentFromOtherSME, CategoryOverdraft:
		return true
	}
	return false
}
