package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

func txn(details, typeClass, typeDesc, entity string) models.Transaction {
	return models.Transaction{
		RawTransaction: models.RawTransaction{ReceiptNo: "SAB1CD2EF3", Details: details},
		TypeClass:      typeClass,
		TypeDesc:       typeDesc,
		Entity:         entity,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		in          models.Transaction
		category    models.Category
		subcategory string
		isCharge    bool
		entity      string
		accountNo   string
	}{
		{
			name:     "funds received from a person",
			in:       txn("", "funds received from", "", "John Doe"),
			category: models.CategoryReceivedMoney,
			entity:   "John Doe",
		},
		{
			name:      "funds received from a masked phone",
			in:        txn("Funds received from - 2547******89 JANE ROE", "Funds received from", "", "2547******89 JANE ROE"),
			category:  models.CategoryReceivedMoney,
			entity:    "Jane Roe",
			accountNo: "2547******89",
		},
		{
			name:      "business payment via channel",
			in:        txn("Business Payment from 123456 - ACME LTD via API. Original conversation ID is AB12CD34", "Business Payment from 123456", "", "ACME LTD via API. Original conversation ID is AB12CD34"),
			category:  models.CategoryReceivedMoneyBusiness,
			entity:    "ACME LTD",
			accountNo: "AB12CD34",
		},
		{
			name:     "salary in type description",
			in:       txn("Salary from employer", "Received", "salary payment from employer", "Employer"),
			category: models.CategoryReceivedMoneyBusiness,
			entity:   "Employer",
		},
		{
			name:        "deposit",
			in:          txn("Deposit of Funds at Agent Till 12345 - Shop", "Deposit of Funds at", "Agent Till 12345", "Shop"),
			category:    models.CategoryDeposit,
			subcategory: "deposit",
			entity:      "Shop",
		},
		{
			name:      "pochi received",
			in:        txn("Customer Payment to Small Business from - 2547******89 JANE", "Customer Payment to Small", "Business from", "2547******89 JANE"),
			category:  models.CategoryPochiIn,
			entity:    "Jane",
			accountNo: "2547******89",
		},
		{
			name:     "reversal",
			in:       txn("Reversal of transaction", "Reversal of transaction", "", "Reversal of transaction"),
			category: models.CategoryReversals,
			entity:   "Reversal of transaction",
		},
		{
			name:     "hustler fund charge",
			in:       txn("Term Loan Charge - Hustler Fund", "Term Loan Charge", "", "Hustler Fund"),
			category: models.CategoryHustlerFund,
			isCharge: true,
			entity:   "Hustler Fund",
		},
		{
			name:     "kcb",
			in:       txn("KCB M-PESA Deposit - Account", "KCB M-PESA Deposit", "", "Account"),
			category: models.CategoryKCB,
			entity:   "Account",
		},
		{
			name:        "m-shwari",
			in:          txn("M-Shwari Withdraw - Savings", "M-Shwari Withdraw", "", "Savings"),
			category:    models.CategoryMShwari,
			subcategory: "mshwari",
			entity:      "Savings",
		},
		{
			name:     "payment from another small business",
			in:       txn("Small Business Transfer to Other Small Business from - SHOP", "Small Business Transfer to", "Other Small Business from", "SHOP"),
			category: models.CategoryBusinessPaymentFromOtherSME,
			entity:   "SHOP",
		},
		{
			name:        "send money charge",
			in:          txn("Customer Transfer to 254***123 Jane Roe", "customer transfer", "charge", "254***123 Jane Roe"),
			category:    models.CategorySendMoney,
			subcategory: "charge",
			isCharge:    true,
			entity:      "Jane Roe",
		},
		{
			name:        "send money principal",
			in:          txn("Customer Transfer to - 2547******89 JOHN DOE", "Customer Transfer to", "", "2547******89 JOHN DOE"),
			category:    models.CategorySendMoney,
			subcategory: "transfer",
			entity:      "John Doe",
		},
		{
			name:      "business payment to customer",
			in:        txn("Payout - BETCO via API. Original conversation ID is X1", "Small Business Payment to", "", "BETCO via API. Original conversation ID is X1"),
			category:  models.CategoryBusinessPaymentToCustomer,
			entity:    "BETCO",
			accountNo: "X1",
		},
		{
			name:        "overdraft",
			in:          txn("OverDraft of Credit Party - Fuliza", "OverDraft of Credit Party", "", "Fuliza"),
			category:    models.CategoryOverdraft,
			subcategory: "overdraft",
			entity:      "Fuliza",
		},
		{
			name:     "buy goods principal",
			in:       txn("Merchant Payment to 123456 - SUPERMARKET", "Merchant Payment to 123456", "", "SUPERMARKET"),
			category: models.CategoryBuyGoodsPayments,
			entity:   "SUPERMARKET",
		},
		{
			name:        "buy goods charge",
			in:          txn("Pay Merchant Charge", "Pay Merchant Charge", "", "Pay Merchant Charge"),
			category:    models.CategoryBuyGoodsPayments,
			subcategory: "charge",
			isCharge:    true,
			entity:      "Pay Merchant Charge",
		},
		{
			name:      "pay bill",
			in:        txn("Pay Bill Online to Kenya Power Acc. 123456", "pay bill", "", "Kenya Power Acc. 123456"),
			category:  models.CategoryPayBillPayments,
			entity:    "Kenya Power",
			accountNo: "123456",
		},
		{
			name:        "pochi payment",
			in:          txn("Customer Payment to Small Business to - 2547******89 MAMA MBOGA", "Customer Payment to Small", "Business to", "2547******89 MAMA MBOGA"),
			category:    models.CategoryPochi,
			subcategory: "pochi",
			entity:      "Mama Mboga",
		},
		{
			name:        "cash withdrawal",
			in:          txn("Customer Withdrawal At Agent Till 1234 - SHOP", "Customer Withdrawal At Agent", "Till 1234", "SHOP"),
			category:    models.CategoryCashWithdrawals,
			subcategory: "withdrawal",
			entity:      "SHOP",
		},
		{
			name:        "cash withdrawal charge",
			in:          txn("Withdrawal Charge", "Withdrawal Charge", "", "Withdrawal Charge"),
			category:    models.CategoryCashWithdrawals,
			subcategory: "charge",
			isCharge:    true,
			entity:      "Withdrawal Charge",
		},
		{
			name:        "airtime",
			in:          txn("Airtime Purchase", "", "bundles", ""),
			category:    models.CategoryAirtimeBundle,
			subcategory: "purchase",
		},
		{
			name:        "bundle for another number",
			in:          txn("Bundle Purchase - 2547******89 JOHN", "Bundle Purchase", "", "2547******89 JOHN"),
			category:    models.CategoryAirtimeBundle,
			subcategory: "purchase",
			entity:      "John",
		},
		{
			name:     "missing details marker",
			in:       txn("nan", "funds received from", "salary payment from", "nan"),
			category: models.CategoryNoDetails,
			entity:   "nan",
		},
		{
			name:     "empty row",
			in:       txn("", "", "", ""),
			category: models.CategoryNoDetails,
		},
		{
			name:        "unknown wording with business counterparty",
			in:          txn("Lipa na Bonga Points - Bonga", "Lipa na Bonga Points", "", "Bonga"),
			category:    models.CategoryUncategorized,
			subcategory: "unknown",
			entity:      "non",
		},
		{
			name:        "unknown wording with numeric counterparty",
			in:          txn("Something New - 2547******89 JOHN DOE", "Something New", "", "2547******89 JOHN DOE"),
			category:    models.CategoryUncategorized,
			subcategory: "unknown",
			entity:      "John Doe",
		},
		{
			name:        "withdrawal described as from is not cash out",
			in:          txn("Withdrawal from bank - Equity", "Funds Transfer to", "from bank", "Equity"),
			category:    models.CategoryUncategorized,
			subcategory: "unknown",
			entity:      "non",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.in)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.subcategory, got.Subcategory)
			assert.Equal(t, tt.isCharge, got.IsCharge)
			assert.Equal(t, tt.entity, got.ProcessedEntity)
			assert.Equal(t, tt.accountNo, got.AccountNo)
			assert.Equal(t, tt.in, got.Transaction, "input fields must pass through")
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// Matches both the pay bill and the cash withdrawal rule.
	in := txn("Pay Bill Online to Kenya Power withdrawal charge", "pay bill charge", "", "Kenya Power Acc. 99")

	got := Classify(in)
	assert.Equal(t, models.CategoryPayBillPayments, got.Category)
	assert.True(t, got.IsCharge)
	assert.Equal(t, "charge", got.Subcategory)
	assert.Equal(t, "Kenya Power", got.ProcessedEntity)
	assert.Equal(t, "99", got.AccountNo)

	// Matches deposit and reversal; deposit is declared first.
	got = Classify(txn("Reversal of Deposit of Funds", "Reversal of Deposit of", "Funds", "Agent"))
	assert.Equal(t, models.CategoryDeposit, got.Category)
}

func TestClassifyDeterministic(t *testing.T) {
	in := txn("Customer Transfer to - 2547******89 JOHN DOE", "Customer Transfer to", "", "2547******89 JOHN DOE")
	assert.Equal(t, Classify(in), Classify(in))
}

func TestClassifyTotal(t *testing.T) {
	inputs := []models.Transaction{
		{},
		txn("   ", "", "", ""),
		txn("***", "***", "***", "***"),
		txn("-", "-", "-", "-"),
		txn("12", "", "", "12"),
		txn("Ünïcödé - Ωmega", "Ünïcödé", "", "Ωmega"),
	}
	for _, in := range inputs {
		got := Classify(in)
		assert.True(t, got.Category.Valid(), "category %q for %+v", got.Category, in)
	}
}

func TestRulesOrder(t *testing.T) {
	rs := Rules()
	require.Len(t, rs, len(models.Categories()))
	for i, c := range models.Categories() {
		assert.Equal(t, c, rs[i].Category, "rule %d", i+1)
		assert.NotEmpty(t, rs[i].Description)
	}
}

func TestMatch(t *testing.T) {
	r := Match(txn("Airtime Purchase", "Airtime Purchase", "", "Airtime Purchase"))
	assert.Equal(t, models.CategoryAirtimeBundle, r.Category)

	r = Match(txn("brand new", "brand new", "", "brand new"))
	assert.Equal(t, models.CategoryUncategorized, r.Category)
}
