package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

func TestCleanRow(t *testing.T) {
	raw := models.RawTransaction{
		ReceiptNo: " SAB1CD2EF3 ",
		DateTime:  time.Date(2024, 1, 15, 14, 3, 11, 0, time.UTC),
		Details:   "  Customer   Transfer to -  2547******89  JOHN DOE ",
		PaidIn:    decimal.NewFromInt(-3),
		Withdrawn: decimal.NewFromInt(-500),
	}

	got := CleanRow(raw)

	if got.ReceiptNo != "SAB1CD2EF3" {
		t.Errorf("receipt: got %q", got.ReceiptNo)
	}
	if got.Details != "Customer Transfer to - 2547******89 JOHN DOE" {
		t.Errorf("details: got %q", got.Details)
	}
	if got.Type != "Customer Transfer to" {
		t.Errorf("type: got %q", got.Type)
	}
	if got.Entity != "2547******89 JOHN DOE" {
		t.Errorf("entity: got %q", got.Entity)
	}
	if got.TypeClass != "Customer Transfer to" || got.TypeDesc != "" {
		t.Errorf("type split: got %q / %q", got.TypeClass, got.TypeDesc)
	}
	if got.Month != "January_24" || got.Week != "03_24" {
		t.Errorf("labels: got %q / %q", got.Month, got.Week)
	}
	assertDecimal(t, "paid in", got.PaidIn, "0")
	assertDecimal(t, "withdrawn", got.Withdrawn, "500")
}

func TestCleanRowMissingDetails(t *testing.T) {
	for _, details := range []string{"", "   ", "nan", "NaN"} {
		t.Run(details, func(t *testing.T) {
			got := CleanRow(models.RawTransaction{ReceiptNo: "SAB1CD2EF3", Details: details})
			if got.Details != models.MissingDetails || got.Entity != models.MissingDetails {
				t.Errorf("got details %q entity %q, want %q", got.Details, got.Entity, models.MissingDetails)
			}
			if got.Type != "" || got.TypeClass != "" || got.TypeDesc != "" {
				t.Errorf("type tokens should be empty, got %q %q %q", got.Type, got.TypeClass, got.TypeDesc)
			}
			if got.Month != "" || got.Week != "" {
				t.Errorf("labels should be empty without a time, got %q %q", got.Month, got.Week)
			}
		})
	}
}

func TestCleanKeepsOrder(t *testing.T) {
	rows := []models.RawTransaction{
		{ReceiptNo: "B", Details: "Airtime Purchase"},
		{ReceiptNo: "A", Details: "Customer Payment to Small Business to - 2547******89 MAMA"},
	}

	got := Clean(rows)
	if len(got) != 2 || got[0].ReceiptNo != "B" || got[1].ReceiptNo != "A" {
		t.Fatalf("order not kept: %+v", got)
	}
	if got[0].Entity != "Airtime Purchase" {
		t.Errorf("no separator entity: got %q", got[0].Entity)
	}
	if got[1].TypeClass != "Customer Payment to Small" || got[1].TypeDesc != "Business to" {
		t.Errorf("type split: got %q / %q", got[1].TypeClass, got[1].TypeDesc)
	}
}

func TestCleanRowNonBreakingSpaces(t *testing.T) {
	got := CleanRow(models.RawTransaction{
		ReceiptNo: "SAB1CD2EF3",
		Details:   "Customer Transfer to\u00a0-\u00a02547***89 JOHN DOE",
	})

	if got.Details != "Customer Transfer to - 2547***89 JOHN DOE" {
		t.Errorf("details: got %q", got.Details)
	}
	if got.Entity != "2547***89 JOHN DOE" {
		t.Errorf("entity: got %q, want %q", got.Entity, "2547***89 JOHN DOE")
	}
	if got.TypeClass != "Customer Transfer to" {
		t.Errorf("type class: got %q", got.TypeClass)
	}
}
