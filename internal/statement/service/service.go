// Package service orchestrates the statement ingestion pipeline:
// extract, categorize, deduplicate, summarize.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kennedy-ak/expense/internal/statement"
	"github.com/kennedy-ak/expense/internal/statement/categorize"
	"github.com/kennedy-ak/expense/internal/statement/dedupe"
	"github.com/kennedy-ak/expense/internal/statement/extractor"
	"github.com/kennedy-ak/expense/internal/statement/summary"
)

// Extractor produces the raw batch for one document.
type Extractor interface {
	Extract(ctx context.Context, path string) (*extractor.Result, error)
}

// Options carries the caller-supplied inputs for one import.
type Options struct {
	// Categories are evaluated before the built-in table, in the
	// order given.
	Categories []categorize.Category
	// KnownIDs is the set of external transaction IDs already stored.
	KnownIDs map[string]struct{}
	// SuggestOnOther enables fuzzy category suggestions for
	// transactions that fall through to the fallback category.
	SuggestOnOther bool
}

// Result is the full outcome of one import batch. Transactions and
// Errors are in document traversal order.
type Result struct {
	BatchID      uuid.UUID
	Transactions []statement.Transaction
	Errors       []statement.RowError
	Summary      *summary.Summary
	TotalParsed  int
	TotalErrors  int
	SkippedRows  int
}

// Importer runs the pipeline. The default rule table is fixed at
// construction, so concurrent imports for different documents are
// independent.
type Importer struct {
	extractor Extractor
	defaults  []categorize.Category
	logger    *slog.Logger
}

// New creates an Importer with the built-in category table.
func New(ex Extractor, logger *slog.Logger) *Importer {
	return NewWithRules(ex, categorize.DefaultRules(), logger)
}

// NewWithRules creates an Importer with a custom built-in rule table.
func NewWithRules(ex Extractor, defaults []categorize.Category, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{extractor: ex, defaults: defaults, logger: logger}
}

// Import processes one statement document end to end. A document that
// cannot be opened yields a result with zero transactions and one
// error; only context cancellation aborts the batch.
func (i *Importer) Import(ctx context.Context, path string, opts Options) (*Result, error) {
	extracted, err := i.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	engine := categorize.NewEngine(opts.Categories, i.defaults)
	engine.CategorizeAll(extracted.Transactions)

	if opts.SuggestOnOther {
		suggester := categorize.NewSuggester(opts.Categories, i.defaults)
		for idx := range extracted.Transactions {
			tx := &extracted.Transactions[idx]
			if tx.Category == engine.Fallback() {
				tx.CategoryGuess = suggester.Suggest(categorize.SearchText(tx))
			}
		}
	}

	flagged := dedupe.Mark(extracted.Transactions, opts.KnownIDs)

	result := &Result{
		BatchID:      uuid.New(),
		Transactions: extracted.Transactions,
		Errors:       extracted.Errors,
		Summary:      summary.Build(extracted.Transactions),
		TotalParsed:  extracted.TotalParsed,
		TotalErrors:  extracted.TotalErrors,
		SkippedRows:  extracted.SkippedRows,
	}

	i.logger.InfoContext(ctx, "statement import complete",
		slog.String("batch_id", result.BatchID.String()),
		slog.String("path", path),
		slog.Int("parsed", result.TotalParsed),
		slog.Int("errors", result.TotalErrors),
		slog.Int("skipped", result.SkippedRows),
		slog.Int("duplicates", flagged),
	)
	return result, nil
}
