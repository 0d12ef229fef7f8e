package extractor

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Cell reconstruction thresholds, in PDF points. Text items on the same
// baseline separated by more than cellGap belong to different table
// columns; smaller positive gaps are word spacing within one cell.
const (
	cellGap = 12.0
	wordGap = 1.0
)

// openPDF opens a statement document. The pdf library panics on some
// malformed files, so the panic is converted into an open error.
func openPDF(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf reader: %v", rec)
		}
	}()
	return pdf.Open(path)
}

// pageRows reconstructs the table rows of one page from its positioned
// text items. Returns one cell slice per visual row, top to bottom.
func pageRows(p pdf.Page) (rows [][]string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page content: %v", rec)
		}
	}()
	content := p.Content()
	return rowsFromText(content.Text), nil
}

// rowsFromText groups positioned text items into rows by Y coordinate
// and splits each row into cells on horizontal gaps.
func rowsFromText(items []pdf.Text) [][]string {
	type piece struct {
		x, w float64
		s    string
	}

	// Group by rounded Y; the rounding is the baseline tolerance.
	byLine := make(map[int][]piece)
	for _, t := range items {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		byLine[yKey] = append(byLine[yKey], piece{x: t.X, w: t.W, s: t.S})
	}

	// PDF Y runs bottom-to-top; descending Y is reading order.
	yKeys := make([]int, 0, len(byLine))
	for y := range byLine {
		yKeys = append(yKeys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	rows := make([][]string, 0, len(yKeys))
	for _, y := range yKeys {
		pieces := byLine[y]
		sort.Slice(pieces, func(a, b int) bool {
			return pieces[a].x < pieces[b].x
		})

		var cells []string
		var cell strings.Builder
		prevEnd := math.Inf(-1)
		for _, pc := range pieces {
			gap := pc.x - prevEnd
			switch {
			case cell.Len() == 0:
				// First piece of the row.
			case gap > cellGap:
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			case gap > wordGap:
				cell.WriteByte(' ')
			}
			cell.WriteString(pc.s)
			end := pc.x + pc.w
			if end > prevEnd {
				prevEnd = end
			}
		}
		if cell.Len() > 0 {
			cells = append(cells, strings.TrimSpace(cell.String()))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}
