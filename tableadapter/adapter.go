// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tableadapter is a thin, stateless wrapper over an external table
// extractor, yielding page-indexed grids of string cells. The rest of the
// module depends only on the TableSource interface; PDFTableSource is a
// default, swappable implementation.
package tableadapter

import (
	"regexp"
	"strings"

	"github.com/ledgerleaf/secextract/data"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// TableSource loads tables from a PDF path. pages is an inclusive 1-based
// page range; an empty range means "all pages". Implementations return a
// plain error; callers use LoadTablesSafe to convert that into a warning
// rather than aborting the whole extraction.
type TableSource interface {
	LoadTables(path string, firstPage, lastPage int) ([]data.Table, error)
}

// columnSplit finds runs of two or more spaces, the conventional seam
// between columns in a fixed-width text render of a table.
var columnSplit = regexp.MustCompile(`\s{2,}`)

// PDFTableSource is the default TableSource: it extracts per-page text with
// ledongthuc/pdf (pure Go, no cgo) and segments each line into cells on
// wide whitespace gaps. It does not attempt real table-structure detection
// (ruling lines, cell spans) — that remains the external collaborator's
// job; this is a best-effort default so the engine has something to run
// against out of the box.
type PDFTableSource struct{}

// NewPDFTableSource constructs the default adapter.
func NewPDFTableSource() *PDFTableSource {
	return &PDFTableSource{}
}

// LoadTables implements TableSource.
func (a *PDFTableSource) LoadTables(path string, firstPage, lastPage int) ([]data.Table, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	total := r.NumPage()
	start, end := 1, total
	if firstPage > 0 {
		start = firstPage
	}
	if lastPage > 0 && lastPage < total {
		end = lastPage
	}

	tables := make([]data.Table, 0, end-start+1)
	for pageNum := start; pageNum <= end; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Debug().Err(err).Int("page", pageNum).Msg("failed to extract page text")
			continue
		}

		tables = append(tables, data.Table{
			Page:  pageNum,
			Cells: textToGrid(text),
		})
	}

	return tables, nil
}

// textToGrid segments plain text into a cell grid by splitting each
// non-blank line on wide whitespace runs.
func textToGrid(text string) [][]string {
	lines := strings.Split(text, "\n")
	grid := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := columnSplit.Split(strings.TrimSpace(line), -1)
		grid = append(grid, cells)
	}
	return grid
}

// JoinText concatenates the row text of the first maxPages tables (by
// position in the slice, which is page order). The format detector and
// currency resolver both scan this joined text from the leading pages.
func JoinText(tables []data.Table, maxPages int) string {
	var b strings.Builder
	for i, t := range tables {
		if maxPages > 0 && i >= maxPages {
			break
		}
		for row := 0; row < t.NumRows(); row++ {
			b.WriteString(t.RowText(row))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// BuildTableFromText turns raw text a caller already has into a single-page
// Table using the same whitespace-segmentation heuristic as PDFTableSource.
func BuildTableFromText(text string) []data.Table {
	return []data.Table{{
		Page:  1,
		Cells: textToGrid(text),
	}}
}

// LoadTablesSafe wraps a TableSource call and converts any error into an
// empty sequence plus a warning string. Callers in engine use this rather
// than calling TableSource directly so adapter failures never abort a run.
func LoadTablesSafe(src TableSource, path string, firstPage, lastPage int) ([]data.Table, string) {
	tables, err := src.LoadTables(path, firstPage, lastPage)
	if err != nil {
		return []data.Table{}, "adapter_failure: " + err.Error()
	}
	return tables, ""
}
