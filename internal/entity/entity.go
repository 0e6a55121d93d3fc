// Package entity normalizes the counterparty text of M-Pesa statement rows.
//
// Three shapes of counterparty text appear on statements:
//
//	2547******89 JOHN DOE                       masked phone followed by a name
//	ACME LTD via API. Original conversation ID is AB12CD   business paying through a channel
//	Kenya Power Acc. 123456                     paybill business and account
//
// Each shape has its own strategy. The classifier decides which one applies.
package entity

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	maskedPhonePattern = regexp.MustCompile(`\*+`)
	paybillPattern     = regexp.MustCompile(`(.*?)(?:\s+Acc\.\s+(.*)|$)`)
	businessPattern    = regexp.MustCompile(`(?i)(.*?)(?:\s+(?:via).*?(?:is)\s+(.*)|$)`)
)

// MaskedPhone splits "2547***123 John Doe" into ("John Doe", "2547***123"),
// both title-cased. Text without a mask is returned title-cased with an empty
// phone fragment. Empty input is returned unchanged.
func MaskedPhone(raw string) (name, phone string) {
	if raw == "" {
		return raw, ""
	}
	if !maskedPhonePattern.MatchString(raw) {
		return title(raw), ""
	}
	head, rest, found := strings.Cut(raw, " ")
	if !found {
		// a bare masked number has no name to separate from it
		return title(raw), title(raw)
	}
	return title(rest), title(head)
}

// BusinessVia splits "<business> via <channel> is <reference>" into the
// business name and the reference. Text that does not carry a channel
// suffix comes back as the business name with an empty reference.
func BusinessVia(raw string) (business, reference string) {
	if raw == "" {
		return raw, ""
	}
	m := businessPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw, ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// Paybill splits "<business> Acc. <account>" into the business name and account.
func Paybill(raw string) (business, account string) {
	if raw == "" {
		return raw, ""
	}
	m := paybillPattern.FindStringSubmatch(raw)
	if m == nil {
		return raw, ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// Select picks the strategy for counterparties that may be either a person
// or a business: a leading digit means a phone number, anything else a business.
func Select(raw string) (name, account string) {
	if StartsNumeric(raw, 1) {
		return MaskedPhone(raw)
	}
	return BusinessVia(raw)
}

// StartsNumeric reports whether the first n runes of s exist and are all numeric.
// A string shorter than n is judged on the runes it has.
func StartsNumeric(s string, n int) bool {
	if s == "" {
		return false
	}
	i := 0
	for _, r := range s {
		if i == n {
			break
		}
		if !unicode.IsNumber(r) {
			return false
		}
		i++
	}
	return true
}

// title title-cases s. A letter after an apostrophe starts a new word
// ("O'Brien"), which cases.Title alone does not do.
func title(s string) string {
	// Casers keep state between calls and must not be shared.
	rs := []rune(cases.Title(language.Und).String(s))
	for i := 1; i < len(rs); i++ {
		if rs[i-1] == '\'' || rs[i-1] == '’' {
			rs[i] = unicode.ToUpper(rs[i])
		}
	}
	return string(rs)
}
