package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/insightdelivered/mpesa-statement-analyzer/internal/api"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/config"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/extractor"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/logger"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/models"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/pipeline"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/ui"
	"github.com/insightdelivered/mpesa-statement-analyzer/internal/writer"
)

const version = api.Version

type options struct {
	password    string
	output      string
	summaryPath string
	from, to    string
	months      string
	header      bool
}

func main() {
	// CLI flags
	passwordFlag := flag.String("password", "", "Statement PDF password (defaults to $STATEMENT_PASSWORD)")
	outputFlag := flag.String("output", "", "Output CSV file path (defaults to input filename with .classified.csv extension)")
	summaryFlag := flag.String("summary", "", "Also write the per-category summary CSV to this path")
	fromFlag := flag.String("from", "", "Only keep transactions on or after this date (YYYY-MM-DD)")
	toFlag := flag.String("to", "", "Only keep transactions on or before this date (YYYY-MM-DD)")
	monthsFlag := flag.String("months", "", "Only keep these months, comma-separated (e.g. January_2024,February_2024)")
	headerFlag := flag.Bool("header", true, "Include statement metadata rows in CSV (overrides output.include_header)")
	configFlag := flag.String("config", "", "YAML config file")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API instead of processing files")
	addrFlag := flag.String("addr", "", "Listen address for -serve (overrides config)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `M-PESA Statement Analyzer
by Insight Delivered

Classifies the transactions of Safaricom M-PESA statements into
categories and summarizes money in and out per category.

Usage:
  mpesa-analyzer [flags] <statement.pdf|statement.csv> [more ...]
  mpesa-analyzer -serve [-addr :8080]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Classify a password-protected statement
  mpesa-analyzer -password=12345678 statement.pdf

  # Only January 2024, with a summary file
  mpesa-analyzer -months=January_2024 -summary=summary.csv statement.pdf

  # Date range on a CSV export
  mpesa-analyzer -from=2024-01-01 -to=2024-03-31 export.csv

  # Serve the API and dashboard
  mpesa-analyzer -serve -config=config.yaml
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("mpesa-analyzer v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatalf("Configuration error: %v\n", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if *serveFlag {
		if *addrFlag != "" {
			cfg.Server.Addr = *addrFlag
		}
		if err := serve(cfg, log); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	opts := options{
		password:    cfg.Password,
		output:      *outputFlag,
		summaryPath: *summaryFlag,
		from:        *fromFlag,
		to:          *toFlag,
		months:      *monthsFlag,
		header:      includeHeader(flag.CommandLine, *headerFlag, cfg.Output.IncludeHeader),
	}
	if *passwordFlag != "" {
		opts.password = *passwordFlag
	}

	out := ui.New(color.Output)
	ctx := logger.WithContext(context.Background(), log)

	inputFiles := flag.Args()
	if len(inputFiles) > 1 && opts.output != "" {
		fatalf("-output can only be used with a single input file\n")
	}

	for _, inputPath := range inputFiles {
		if err := processFile(ctx, out, inputPath, opts, cfg.Analysis.TopN); err != nil {
			out.Error(fmt.Sprintf("processing %s: %v", inputPath, err))
			if errors.Is(err, extractor.ErrInvalidPassword) {
				out.Info("pass the statement password with -password or $STATEMENT_PASSWORD")
			}
			os.Exit(1)
		}
	}
}

func processFile(ctx context.Context, out *ui.Printer, inputPath string, opts options, topN int) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("input file not readable: %w", err)
	}

	from, err := pipeline.ParseDate(opts.from)
	if err != nil {
		return err
	}
	to, err := pipeline.ParseDate(opts.to)
	if err != nil {
		return err
	}
	months, err := pipeline.ParseMonths(opts.months)
	if err != nil {
		return err
	}

	out.Header(filepath.Base(inputPath))
	out.Step(1, 3, "Reading and classifying transactions")

	res, err := pipeline.Run(ctx, pipeline.Input{
		Name:     inputPath,
		Data:     data,
		Password: opts.password,
	}, pipeline.Options{From: from, To: to, Months: months, TopN: topN})
	if err != nil {
		return err
	}

	out.Success(fmt.Sprintf("Found %d transaction(s), %d after filters", res.All.Len(), res.Buckets.Len()))
	if info := res.Info; info.CustomerName != "" {
		out.Info("Customer: " + info.CustomerName)
	}
	if info := res.Info; info.StatementPeriod != "" {
		out.Info("Period: " + info.StatementPeriod)
	}
	if res.All.Len() == 0 {
		out.Warning("No transactions found. The statement layout may not match the expected M-PESA format.")
	}
	if n := len(res.Buckets.Get(models.CategoryUncategorized)); n > 0 {
		out.Warning(fmt.Sprintf("%d uncategorized transaction(s) need manual review", n))
	}

	out.Step(2, 3, "Writing CSV")
	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".classified.csv"
	}
	w := &writer.CSVWriter{IncludeHeader: opts.header}
	if err := w.WriteToFile(outPath, res.Info, res.Buckets); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}
	out.Success("Output: " + outPath)

	if opts.summaryPath != "" {
		f, err := os.Create(opts.summaryPath)
		if err != nil {
			return fmt.Errorf("failed to create summary file %q: %w", opts.summaryPath, err)
		}
		defer f.Close()
		if err := w.WriteSummary(f, res.Summary); err != nil {
			return fmt.Errorf("summary write failed: %w", err)
		}
		out.Success("Summary: " + opts.summaryPath)
	}

	out.Step(3, 3, "Summary")
	out.SummaryTable(res.Summary)
	return nil
}

func serve(cfg config.Config, log zerolog.Logger) error {
	app := api.NewApp(&api.Handler{
		StaticDir:     cfg.Server.StaticDir,
		TopN:          cfg.Analysis.TopN,
		IncludeHeader: cfg.Output.IncludeHeader,
		Log:           log,
	}, cfg.Server.BodyLimitMB)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.Addr).Str("version", version).Msg("listening")
	return app.Listen(cfg.Server.Addr)
}

// includeHeader lets an explicit -header win over output.include_header.
func includeHeader(fs *flag.FlagSet, flagValue, configured bool) bool {
	if flagSet(fs, "header") {
		return flagValue
	}
	return configured
}

// flagSet reports whether the named flag was given explicitly, as opposed
// to holding its default.
func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
