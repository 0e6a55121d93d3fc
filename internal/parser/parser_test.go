package parser

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		pages   []string
		wantErr bool
	}{
		{
			name:  "detects M-PESA header",
			pages: []string{"M-PESA STATEMENT\nCustomer Name: JOHN DOE"},
		},
		{
			name:  "detects lowercase mpesa",
			pages: []string{"page one", "your mpesa statement"},
		},
		{
			name:  "detects Safaricom",
			pages: []string{"Safaricom PLC\nStatement"},
		},
		{
			name:    "other statement returns error",
			pages:   []string{"Some Bank plc\nAccount Statement"},
			wantErr: true,
		},
		{
			name:    "no text returns error",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Detect(tt.pages)
			if tt.wantErr {
				if !errors.Is(err, ErrNotMpesaStatement) {
					t.Errorf("got %v, want ErrNotMpesaStatement", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseStatementRejectsOtherStatements(t *testing.T) {
	_, err := ParseStatement([]string{"Barclays Bank UK PLC\n15/01/2024 CARD PAYMENT 25.99"})
	if !errors.Is(err, ErrNotMpesaStatement) {
		t.Errorf("got %v, want ErrNotMpesaStatement", err)
	}
}
