// Package extractor walks a statement PDF page by page, reconstructs
// table rows, and normalizes each row into a transaction. Every row is
// processed in isolation: one corrupt row becomes a RowError, never an
// aborted batch.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kennedy-ak/expense/internal/statement"
	"github.com/kennedy-ak/expense/internal/statement/parser"
)

// headerMarker identifies the header row of a statement table.
const headerMarker = "Date"

// Result is the outcome of walking one document. Transactions and
// Errors are in document traversal order (page, then row).
type Result struct {
	Transactions []statement.Transaction
	Errors       []statement.RowError
	TotalParsed  int
	TotalErrors  int
	// SkippedRows counts data-looking rows that were soft-rejected
	// (zero amount or unparsable date). They produce neither a
	// transaction nor an error.
	SkippedRows int
}

// Extractor extracts transactions from statement PDFs.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract walks every page of the document at path. A document that
// cannot be opened is reported as a single page-0/row-0 error in the
// result, not as a returned error; the returned error is non-nil only
// when ctx is cancelled, in which case the partial result accumulated
// so far is still returned.
func (e *Extractor) Extract(ctx context.Context, path string) (*Result, error) {
	result := &Result{
		Transactions: make([]statement.Transaction, 0, 64),
		Errors:       make([]statement.RowError, 0),
	}

	f, reader, err := openPDF(path)
	if err != nil {
		result.Errors = append(result.Errors, statement.RowError{
			Page:    0,
			Row:     0,
			Message: fmt.Sprintf("failed to open PDF: %v", err),
		})
		result.TotalErrors = len(result.Errors)
		e.logger.Warn("statement document unreadable", slog.String("path", path), slog.Any("error", err))
		return result, nil
	}
	defer f.Close()

	numPages := reader.NumPage()
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			result.TotalParsed = len(result.Transactions)
			result.TotalErrors = len(result.Errors)
			return result, err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		table, err := pageRows(page)
		if err != nil {
			result.Errors = append(result.Errors, statement.RowError{
				Page:    pageNum,
				Row:     0,
				Message: fmt.Sprintf("failed to read page: %v", err),
			})
			continue
		}

		e.processTable(table, pageNum, result)
	}

	result.TotalParsed = len(result.Transactions)
	result.TotalErrors = len(result.Errors)

	e.logger.Info("statement extracted",
		slog.String("path", path),
		slog.Int("pages", numPages),
		slog.Int("transactions", result.TotalParsed),
		slog.Int("errors", result.TotalErrors),
		slog.Int("skipped", result.SkippedRows),
	)
	return result, nil
}

// processTable locates the optional header row, derives the column
// schema from it, and normalizes every subsequent row.
func (e *Extractor) processTable(table [][]string, pageNum int, result *Result) {
	if len(table) == 0 {
		return
	}

	dataStart := 0
	schema := parser.DefaultSchema()
	for i, row := range table {
		if isHeaderRow(row) {
			schema = parser.SchemaFromHeader(row)
			dataStart = i + 1
			break
		}
	}

	norm := parser.NewRowNormalizer(schema)
	for i := dataStart; i < len(table); i++ {
		row := table[i]
		rowNum := i + 1

		tx, err := normalizeRow(norm, row, pageNum, rowNum)
		switch {
		case errors.Is(err, parser.ErrNotDataRow):
			continue
		case errors.Is(err, parser.ErrRowSkipped):
			result.SkippedRows++
		case err != nil:
			result.Errors = append(result.Errors, statement.RowError{
				Page:    pageNum,
				Row:     rowNum,
				Message: err.Error(),
				Raw:     row,
			})
		case tx != nil:
			result.Transactions = append(result.Transactions, *tx)
		}
	}
}

// normalizeRow isolates one row's normalization so that a panic in a
// sub-parser is reported as that row's error and the walk continues.
func normalizeRow(norm *parser.RowNormalizer, row []string, page, rowNum int) (tx *statement.Transaction, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			tx = nil
			err = fmt.Errorf("row normalization panic: %v", rec)
		}
	}()
	return norm.Normalize(row, page, rowNum)
}

func isHeaderRow(row []string) bool {
	for _, cell := range row {
		if strings.Contains(cell, headerMarker) {
			return true
		}
	}
	return false
}
