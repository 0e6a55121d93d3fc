package parser

import (
	"regexp"
	"strings"
)

// detailsSeparator finds the last hyphen that is preceded by whitespace (or
// the start of the text) and followed by whitespace and then a non-space
// character. Whitespace includes NBSP, which PDF extraction leaves behind. Go's regexp has no lookaround, so the boundaries are matched
// as groups and trimmed away.
var detailsSeparator = regexp.MustCompile(`^(.*)(?:^|[\s\p{Zs}])[ \p{Zs}]*-[ \p{Zs}]*[\s\p{Zs}]([^\s\p{Zs}].*)$`)

// SplitDetails splits raw details such as
// "Customer Transfer to - 2547***123 JOHN DOE" into the type phrase and the
// counterparty phrase. When no separator is present the whole text is used
// for both.
func SplitDetails(details string) (typePhrase, entity string) {
	m := detailsSeparator.FindStringSubmatch(details)
	if m == nil {
		return details, details
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

// typeClassWords is how many leading words of the type phrase form its class.
const typeClassWords = 4

// SplitType splits a type phrase into its first four words (the class) and
// the rest (the description). A missing phrase gives two empty strings.
func SplitType(typePhrase string) (typeClass, typeDesc string) {
	words := strings.Fields(typePhrase)
	if len(words) <= typeClassWords {
		return strings.Join(words, " "), ""
	}
	return strings.Join(words[:typeClassWords], " "), strings.Join(words[typeClassWords:], " ")
}
