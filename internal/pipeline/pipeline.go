// Package pipeline runs a statement through extraction, parsing, cleaning,
// classification, filtering and analysis. The CLI and the HTTP API both
// go through it.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/analysis"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/extractor"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/logger"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/parser"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/store"
)

// Input is one uploaded or on-disk statement.
type Input struct {
	Name     string // file name; the extension selects PDF or CSV handling
	Data     []byte
	Password string
}

// Options narrow and shape a run.
type Options struct {
	From   time.Time
	To     time.Time
	Months []string
	TopN   int
}

// Result is everything one run produces.
type Result struct {
	RunID        string
	Info         *models.StatementInfo
	Transactions []models.Transaction
	All          store.Buckets // before filtering
	Buckets      store.Buckets // after filtering
	Summary      []models.SummaryRow
	Reports      []analysis.Report
}

// Run processes in. The run either completes or returns an error; no
// partial result is returned.
func Run(ctx context.Context, in Input, opts Options) (*Result, error) {
	runID := uuid.NewString()
	log := logger.FromContext(ctx).With().Str("run_id", runID).Str("file", in.Name).Logger()

	info, err := Load(in)
	if err != nil {
		return nil, err
	}
	log.Info().Int("rows", len(info.Rows)).Msg("statement parsed")

	txns := parser.Clean(info.Rows)
	all := store.New(log).ClassifyAll(txns)

	filtered := all
	if !opts.From.IsZero() || !opts.To.IsZero() {
		filtered = store.FilterDateRange(filtered, opts.From, opts.To)
	} else if len(opts.Months) > 0 {
		filtered = store.FilterMonths(filtered, opts.Months)
	}
	if filtered.Len() != all.Len() {
		log.Debug().Int("kept", filtered.Len()).Int("total", all.Len()).Msg("filters applied")
	}

	return &Result{
		RunID:        runID,
		Info:         info,
		Transactions: txns,
		All:          all,
		Buckets:      filtered,
		Summary:      store.Summarize(filtered),
		Reports:      analysis.AnalyzeAll(filtered, opts.TopN),
	}, nil
}

// Load turns a PDF or CSV statement into raw rows.
func Load(in Input) (*models.StatementInfo, error) {
	switch ext := strings.ToLower(filepath.Ext(in.Name)); ext {
	case ".pdf":
		pages, err := extractor.ExtractText(bytes.NewReader(in.Data), int64(len(in.Data)), in.Password)
		if err != nil {
			return nil, fmt.Errorf("PDF extraction failed: %w", err)
		}
		info, err := parser.ParseStatement(pages)
		if err != nil {
			return nil, fmt.Errorf("parsing failed: %w", err)
		}
		return info, nil
	case ".csv":
		rows, err := parser.ReadCSV(bytes.NewReader(in.Data))
		if err != nil {
			return nil, fmt.Errorf("parsing failed: %w", err)
		}
		return &models.StatementInfo{Rows: rows}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
}

// ParseDate parses a YYYY-MM-DD filter bound. Empty input gives the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrBadFilter, s)
	}
	return t, nil
}

// ParseMonths splits a comma-separated list of month labels such as
// "January_2024,February_2024" and checks each one.
func ParseMonths(s string) ([]string, error) {
	var out []string
	for _, m := range strings.Split(s, ",") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, err := time.Parse(store.MonthFilterLayout, m); err != nil {
			return nil, fmt.Errorf("%w: month %q must look like January_2024", ErrBadFilter, m)
		}
		out = append(out, m)
	}
	return out, nil
}
