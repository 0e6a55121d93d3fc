package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskedPhone(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantPhone string
	}{
		{"masked number and name", "2547***123 John Doe", "John Doe", "2547***123"},
		{"upper case name", "2547******89 JANE WANJIRU ROE", "Jane Wanjiru Roe", "2547******89"},
		{"no mask", "john doe", "John Doe", ""},
		{"already clean", "John Doe", "John Doe", ""},
		{"empty passes through", "", "", ""},
		{"mask without name", "0722***456", "0722***456", "0722***456"},
		{"apostrophe in name", "2547***12 JOHN O'BRIEN", "John O'Brien", "2547***12"},
		{"typographic apostrophe", "2547***12 mary o’neil", "Mary O’Neil", "2547***12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, phone := MaskedPhone(tt.input)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantPhone, phone)
		})
	}
}

func TestBusinessVia(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantBusiness string
		wantRef      string
	}{
		{
			name:         "channel suffix",
			input:        "ACME LTD via API. Original conversation ID is AB12CD34",
			wantBusiness: "ACME LTD",
			wantRef:      "AB12CD34",
		},
		{
			name:         "case insensitive",
			input:        "Safaricom Plc VIA B2C Reference IS 99887",
			wantBusiness: "Safaricom Plc",
			wantRef:      "99887",
		},
		{"plain business", "Naivas Supermarket", "Naivas Supermarket", ""},
		{"empty passes through", "", "", ""},
		{"via inside a word", "Kivia Traders", "Kivia Traders", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			business, ref := BusinessVia(tt.input)
			assert.Equal(t, tt.wantBusiness, business)
			assert.Equal(t, tt.wantRef, ref)
		})
	}
}

func TestPaybill(t *testing.T) {
	tests := []struct {
		input        string
		wantBusiness string
		wantAccount  string
	}{
		{"Kenya Power Acc. 123456", "Kenya Power", "123456"},
		{"KPLC PREPAID Acc. 54405012345", "KPLC PREPAID", "54405012345"},
		{"Equity Paybill Account", "Equity Paybill Account", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			business, account := Paybill(tt.input)
			assert.Equal(t, tt.wantBusiness, business)
			assert.Equal(t, tt.wantAccount, account)
		})
	}
}

func TestSelect(t *testing.T) {
	name, account := Select("2547***123 JOHN DOE")
	assert.Equal(t, "John Doe", name)
	assert.Equal(t, "2547***123", account)

	name, account = Select("ACME LTD via API is 77")
	assert.Equal(t, "ACME LTD", name)
	assert.Equal(t, "77", account)

	name, account = Select("")
	assert.Equal(t, "", name)
	assert.Equal(t, "", account)
}

func TestStartsNumeric(t *testing.T) {
	assert.True(t, StartsNumeric("2547***", 1))
	assert.True(t, StartsNumeric("25 John", 2))
	assert.False(t, StartsNumeric("2 John", 2))
	assert.True(t, StartsNumeric("7", 2))
	assert.False(t, StartsNumeric("", 1))
	assert.False(t, StartsNumeric("John", 1))
}
