package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

// StatementParser handles M-Pesa full statement PDFs.
//
// The detailed statement table has this layout:
//
//	Receipt No | Completion Time | Details | Transaction Status | Paid In | Withdrawn | Balance
//
// Example line: "SAB1CD2EF3 2024-01-15 14:03:11 Customer Transfer to - 2547******89 JOHN DOE Completed 0.00 -500.00 1,200.00"
//
// Long details wrap onto the following line(s).
type StatementParser struct{}

// M-Pesa transaction line pattern:
// RECEIPT  TIME  [DETAILS]  STATUS  AMOUNT  [AMOUNT]  [AMOUNT]
var statementRowPattern = regexp.MustCompile(
	`^([A-Z0-9]{10})\s+(\d{4}-\d{2}-\d{2}\s+\d{1,2}:\d{2}:\d{2})\s+(?:(.*?)\s+)?` +
		`(?i:(Completed|Failed|Pending|Cancelled|Declined|Reversed))` +
		`\s+(-?[\d,]+\.\d{2})(?:\s+(-?[\d,]+\.\d{2}))?(?:\s+(-?[\d,]+\.\d{2}))?\s*$`,
)

var receiptPrefix = regexp.MustCompile(`^[A-Z0-9]{10}\s+\d{4}-\d{2}-\d{2}`)

func (p *StatementParser) Parse(pages []string) (*models.StatementInfo, error) {
	allText := strings.Join(pages, "\n")

	info := &models.StatementInfo{
		CustomerName:    extractLabelValue(allText, "Customer Name"),
		MobileNumber:    extractLabelValue(allText, "Mobile Number"),
		EmailAddress:    extractLabelValue(allText, "Email Address"),
		StatementPeriod: extractLabelValue(allText, "Statement Period"),
		RequestDate:     extractLabelValue(allText, "Request Date"),
	}

	seen := make(map[string]bool)
	lineNum := 0
	for _, page := range pages {
		lines := strings.Split(page, "\n")
		rows, debug := p.parseLines(lines, lineNum, seen)
		info.Rows = append(info.Rows, rows...)
		info.DebugLines = append(info.DebugLines, debug...)
		lineNum += len(lines)
	}

	return info, nil
}

// parseLines parses one page. Continuations never cross a page boundary:
// the table header is repeated at the top of every page.
func (p *StatementParser) parseLines(lines []string, offset int, seen map[string]bool) ([]models.RawTransaction, []models.DebugLine) {
	var rows []models.RawTransaction
	var debug []models.DebugLine
	inTable := false
	lastKept := false

	for i, raw := range lines {
		line := collapseSpaces(raw)
		dl := models.DebugLine{LineNum: offset + i + 1, Text: line}

		switch {
		case line == "":
			continue

		case containsTableHeader(line):
			inTable = true
			lastKept = false
			dl.Result = "header"

		case statementRowPattern.MatchString(line):
			inTable = true
			row := parseRow(statementRowPattern.FindStringSubmatch(line))
			if seen[row.ReceiptNo] {
				lastKept = false
				dl.Result = "duplicate"
				break
			}
			seen[row.ReceiptNo] = true
			rows = append(rows, row)
			lastKept = true
			dl.Result = "parsed"

		case receiptPrefix.MatchString(line):
			// a row whose amounts could not be read; do not let its
			// text leak into the previous row
			lastKept = false
			dl.Result = "skipped"

		case inTable && lastKept && !isFooterLine(line):
			last := &rows[len(rows)-1]
			last.Details = strings.TrimSpace(last.Details + " " + line)
			dl.Result = "continuation"

		default:
			dl.Result = "skipped"
		}

		debug = append(debug, dl)
	}

	return rows, debug
}

// parseRow builds a row from statementRowPattern submatches.
func parseRow(m []string) models.RawTransaction {
	row := models.RawTransaction{
		ReceiptNo: m[1],
		DateTime:  parseTime(m[2]),
		Details:   strings.TrimSpace(m[3]),
		Status:    normalizeStatus(m[4]),
	}

	var amounts []string
	for _, g := range m[5:8] {
		if g != "" {
			amounts = append(amounts, g)
		}
	}

	switch len(amounts) {
	case 3:
		row.PaidIn = cleanAmount(amounts[0]).Abs()
		row.Withdrawn = cleanAmount(amounts[1]).Abs()
		row.Balance = cleanAmount(amounts[2])
	case 2:
		assignSigned(&row, cleanAmount(amounts[0]))
		row.Balance = cleanAmount(amounts[1])
	case 1:
		assignSigned(&row, cleanAmount(amounts[0]))
	}
	return row
}

// assignSigned puts a lone amount in the column its sign points to:
// withdrawals are printed negative.
func assignSigned(row *models.RawTransaction, amt decimal.Decimal) {
	if amt.IsNegative() {
		row.Withdrawn = amt.Abs()
		return
	}
	row.PaidIn = amt
}

func normalizeStatus(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}

func containsTableHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "receipt") &&
		(strings.Contains(lower, "completion") || strings.Contains(lower, "details")) &&
		(strings.Contains(lower, "paid") || strings.Contains(lower, "withdrawn") || strings.Contains(lower, "balance"))
}

func isFooterLine(line string) bool {
	lower := strings.ToLower(line)
	footerKeywords := []string{
		"page ", "disclaimer", "detailed statement", "statement verification",
		"verification code", "self-help", "*334#", "*234#",
		"total:", "summary",
	}
	for _, kw := range footerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// extractLabelValue returns the text after "Label:" on the first line carrying it.
func extractLabelValue(text, label string) string {
	for _, line := range strings.Split(text, "\n") {
		idx := indexFold(line, label)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(line[idx+len(label):])
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if rest == "" {
			continue
		}
		// Two header fields can share a row; stop at the column gap.
		parts := strings.Split(rest, "  ")
		return strings.TrimSpace(parts[0])
	}
	return ""
}

// indexFold is a case-insensitive strings.Index. Offsets refer to s itself,
// so they stay valid when lowercasing would change rune widths.
func indexFold(s, substr string) int {
	for i := range s {
		if len(s)-i < len(substr) {
			break
		}
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
