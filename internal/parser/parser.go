package parser

import (
	"errors"
	"strings"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
)

var (
	// ErrNotMpesaStatement is returned when the text carries no M-Pesa markers.
	ErrNotMpesaStatement = errors.New("not an M-PESA statement; could not find M-PESA markers in the extracted text")
	// ErrMissingColumns is returned when a table lacks the receipt or details column.
	ErrMissingColumns = errors.New("transaction table is missing required columns")
)

var statementMarkers = []string{"M-PESA", "MPESA", "Safaricom"}

// Detect checks that the extracted pages come from an M-Pesa statement.
func Detect(pages []string) error {
	combined := strings.ToLower(strings.Join(pages, "\n"))
	for _, marker := range statementMarkers {
		if strings.Contains(combined, strings.ToLower(marker)) {
			return nil
		}
	}
	return ErrNotMpesaStatement
}

// ParseStatement detects and parses M-Pesa statement text in one step.
func ParseStatement(pages []string) (*models.StatementInfo, error) {
	if err := Detect(pages); err != nil {
		return nil, err
	}
	return (&StatementParser{}).Parse(pages)
}
