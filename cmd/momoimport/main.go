// Command momoimport runs the statement ingestion pipeline against a
// MoMo PDF export and writes the processed batch to CSV and/or XLSX.
// It plays the role of the application layer: it validates the file
// before invoking the pipeline and decides how results are presented.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kennedy-ak/expense/internal/statement/categorize"
	"github.com/kennedy-ak/expense/internal/statement/export"
	"github.com/kennedy-ak/expense/internal/statement/extractor"
	"github.com/kennedy-ak/expense/internal/statement/service"
	"github.com/kennedy-ak/expense/internal/statement/summary"
	"github.com/kennedy-ak/expense/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "momoimport:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		filePath       = flag.String("file", "", "path to the MoMo statement PDF (required)")
		knownIDsPath   = flag.String("known", "", "file with one already-stored transaction ID per line")
		categoriesPath = flag.String("categories", "", "JSON file with custom categories [{name, keywords}]")
		csvPath        = flag.String("csv", "", "write transactions as CSV to this path")
		xlsxPath       = flag.String("xlsx", "", "write transactions and summary as XLSX to this path")
		fuzzy          = flag.Bool("fuzzy", false, "suggest near-miss categories for uncategorized transactions")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Log.Level)

	if err := validateFile(*filePath, cfg.Import.MaxFileSize); err != nil {
		return err
	}

	opts := service.Options{
		SuggestOnOther: *fuzzy || cfg.Import.FuzzySuggest,
	}
	if *knownIDsPath != "" {
		opts.KnownIDs, err = loadKnownIDs(*knownIDsPath)
		if err != nil {
			return fmt.Errorf("load known IDs: %w", err)
		}
	}
	if *categoriesPath != "" {
		opts.Categories, err = loadCategories(*categoriesPath)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
	}

	importer := service.New(extractor.New(logger), logger)
	result, err := importer.Import(context.Background(), *filePath, opts)
	if err != nil {
		return err
	}

	if result.TotalParsed == 0 && result.TotalErrors > 0 {
		return fmt.Errorf("no transactions parsed: %s", result.Errors[0].Message)
	}

	if *csvPath != "" {
		if err := writeCSVFile(*csvPath, result); err != nil {
			return err
		}
		logger.Info("wrote CSV", slog.String("path", *csvPath))
	}
	if *xlsxPath != "" {
		if err := writeXLSXFile(*xlsxPath, result, cfg.Import.Currency); err != nil {
			return err
		}
		logger.Info("wrote XLSX", slog.String("path", *xlsxPath))
	}

	printSummary(os.Stdout, result, cfg.Import.Currency)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// validateFile applies the caller-side checks the pipeline assumes have
// already happened: extension and size.
func validateFile(path string, maxSize int64) error {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("%s: only PDF statements are supported", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxSize {
		return fmt.Errorf("%s is %d bytes, larger than the %d byte limit", path, info.Size(), maxSize)
	}
	return nil
}

func loadKnownIDs(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ids := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, scanner.Err()
}

func loadCategories(path string) ([]categorize.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var categories []categorize.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return categories, nil
}

func writeCSVFile(path string, result *service.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteCSV(f, result.Transactions)
}

func writeXLSXFile(path string, result *service.Result, currency string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteXLSX(f, result.Transactions, result.Summary, currency)
}

func printSummary(w *os.File, result *service.Result, currency string) {
	sum := result.Summary
	totals := sum.Display(currency)

	fmt.Fprintf(w, "Batch %s\n", result.BatchID)
	fmt.Fprintf(w, "  Parsed:       %d (%d new, %d duplicates, %d skipped)\n",
		sum.Total, sum.NewTransactions, sum.Duplicates, result.SkippedRows)
	fmt.Fprintf(w, "  Errors:       %d\n", result.TotalErrors)
	fmt.Fprintf(w, "  Income:       %s\n", totals.Income)
	fmt.Fprintf(w, "  Expense:      %s\n", totals.Expense)
	fmt.Fprintf(w, "  Fees:         %s\n", totals.Fees)
	fmt.Fprintf(w, "  Tax:          %s\n", totals.Tax)
	fmt.Fprintf(w, "  Balance:      %s\n", totals.FinalBalance)

	if len(sum.Categories) > 0 {
		fmt.Fprintln(w, "  Categories:")
		for _, name := range categoryNames(sum.Categories) {
			stat := sum.Categories[name]
			fmt.Fprintf(w, "    %-15s %3d  %s\n", name, stat.Count, stat.Amount.StringFixed(2))
		}
	}

	for _, rowErr := range result.Errors {
		fmt.Fprintf(w, "  error: %s\n", rowErr.Error())
	}
}

func categoryNames(categories map[string]summary.CategoryStat) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
