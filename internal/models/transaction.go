package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MissingDetails is the marker carried by rows whose details cell was empty.
const MissingDetails = "nan"

// RawTransaction is a single statement row after amount and time cleaning.
type RawTransaction struct {
	ReceiptNo string          `json:"receiptNo"`
	DateTime  time.Time       `json:"dateTime"` // zero when the cell could not be parsed
	Details   string          `json:"details"`
	Status    string          `json:"status,omitempty"`
	PaidIn    decimal.Decimal `json:"paidIn"`
	Withdrawn decimal.Decimal `json:"withdrawn"`
	Balance   decimal.Decimal `json:"balance"`
}

// HasTime reports whether the completion time was parsed.
func (r RawTransaction) HasTime() bool {
	return !r.DateTime.IsZero()
}

// Transaction is a cleaned row with its details split into type and counterparty.
type Transaction struct {
	RawTransaction
	Month     string `json:"month"`
	Week      string `json:"week"`
	Type      string `json:"type"`
	Entity    string `json:"entity"`
	TypeClass string `json:"typeClass"`
	TypeDesc  string `json:"typeDesc"`
}

// ClassifiedTransaction is a Transaction with its category and normalized counterparty.
type ClassifiedTransaction struct {
	Transaction
	Category        Category `json:"category"`
	Subcategory     string   `json:"subcategory"`
	IsCharge        bool     `json:"isCharge"`
	ProcessedEntity string   `json:"processedEntity"`
	AccountNo       string   `json:"accountNo,omitempty"`
}

// StatementInfo holds metadata extracted from the statement header and its rows.
type StatementInfo struct {
	CustomerName    string
	MobileNumber    string
	EmailAddress    string
	StatementPeriod string
	RequestDate     string
	Rows            []RawTransaction
	DebugLines      []DebugLine
}

// DebugLine captures what the parser did with each input line.
type DebugLine struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"` // "parsed", "skipped", "continuation", "header", "duplicate"
}

// SummaryRow is one line of the per-category summary table.
type SummaryRow struct {
	Category         Category        `json:"category"`
	TransactionCount int             `json:"transactionCount"`
	TotalWithdrawn   decimal.Decimal `json:"totalWithdrawn"`
	TotalPaidIn      decimal.Decimal `json:"totalPaidIn"`
	UniqueEntities   int             `json:"uniqueEntities"`
	DateRange        string          `json:"dateRange"`
}
