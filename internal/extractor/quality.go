package extractor

import (
	"strings"
	"unicode"
)

// minTextLen is the shortest text accepted as a statement.
const minTextLen = 50

// minQuality is the share of plain ASCII characters below which the text
// is considered undecoded font garbage.
const minQuality = 0.6

// statementWords appear on every M-Pesa statement page.
var statementWords = []string{
	"m-pesa", "mpesa", "safaricom", "receipt", "completion time",
	"details", "transaction status", "paid in", "withdrawn", "balance",
	"statement",
}

// isReadableText reports whether pages hold enough readable text that
// looks like a statement.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= minTextLen {
		return false
	}
	if textQuality(pages) <= minQuality {
		return false
	}
	return containsStatementWords(pages)
}

// textQuality returns the share of characters that are ASCII letters,
// digits, whitespace or common punctuation. unicode.IsLetter is too broad:
// identity-encoded fonts decode to accented garbage.
func textQuality(pages []string) float64 {
	total, readable := 0, 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isPlain(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isPlain(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(".,-/:;()'\"%&@#!?+=*_", r)
}

func containsStatementWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
