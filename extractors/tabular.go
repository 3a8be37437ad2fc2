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
package extractors

import (
	"strings"

	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/grammar"
	"github.com/ledgerleaf/secextract/registry"
)

// maxHeaderScanRows is how many leading rows of a table are searched for a
// header row before giving up and falling back to relaxed, any-row-with-
// an-ISIN scanning (the "generic" table variant).
const maxHeaderScanRows = 3

// ExtractTabularStyle implements the header-synonym column-mapping strategy:
// it locates a header row using a format's TableHints synonym lists, maps
// each logical field to a column index (falling back to the hint's declared
// FallbackCol when no synonym is found), then reads one record per data row.
// Tables with no recognizable header fall back to a relaxed pass that
// accepts any row containing an ISIN.
func ExtractTabularStyle(tables []data.Table, desc *registry.FormatDescriptor) []*data.SecurityRecord {
	var records []*data.SecurityRecord
	for _, table := range tables {
		cols, headerRow, ok := locateHeader(table, desc.TableHints)
		if !ok {
			records = append(records, extractRelaxed(table)...)
			continue
		}
		for row := headerRow + 1; row < table.NumRows(); row++ {
			if rec := recordFromRow(table, row, cols); rec != nil {
				records = append(records, rec)
			}
		}
	}
	return records
}

type columnMap struct {
	identifier, name, quantity, price, value, currency, date int
}

// locateHeader scans the first maxHeaderScanRows rows of table for a row
// whose cells match enough of hints' synonym lists to be a header, and
// returns the resolved column indices for that table.
func locateHeader(table data.Table, hints registry.TableHints) (columnMap, int, bool) {
	limit := table.NumRows()
	if limit > maxHeaderScanRows {
		limit = maxHeaderScanRows
	}

	for row := 0; row < limit; row++ {
		cells := table.Cells[row]
		cols := columnMap{
			identifier: findColumn(cells, hints.Identifier),
			name:       findColumn(cells, hints.Name),
			quantity:   findColumn(cells, hints.Quantity),
			price:      findColumn(cells, hints.Price),
			value:      findColumn(cells, hints.Value),
			currency:   findColumn(cells, hints.Currency),
			date:       findColumn(cells, hints.Date),
		}
		if cols.identifier >= 0 || cols.quantity >= 0 || cols.value >= 0 {
			return applyFallbacks(cols, hints, len(cells)), row, true
		}
	}
	return columnMap{}, 0, false
}

// findColumn returns the index of the cell matching one of h's synonyms, or
// -1 if none match.
func findColumn(cells []string, h registry.HeaderSynonyms) int {
	for i, cell := range cells {
		lower := strings.ToLower(strings.TrimSpace(cell))
		for _, syn := range h.Synonyms {
			if lower == syn || strings.Contains(lower, syn) {
				return i
			}
		}
	}
	return -1
}

// applyFallbacks substitutes each hint's declared FallbackCol for any field
// that no synonym matched, once a header row is confirmed present, so a
// recognized-but-nonstandard header still maps every field positionally.
func applyFallbacks(cols columnMap, hints registry.TableHints, width int) columnMap {
	fallback := func(got int, h registry.HeaderSynonyms) int {
		if got >= 0 {
			return got
		}
		if h.FallbackCol >= 0 && h.FallbackCol < width {
			return h.FallbackCol
		}
		return -1
	}
	cols.identifier = fallback(cols.identifier, hints.Identifier)
	cols.name = fallback(cols.name, hints.Name)
	cols.quantity = fallback(cols.quantity, hints.Quantity)
	cols.price = fallback(cols.price, hints.Price)
	cols.value = fallback(cols.value, hints.Value)
	cols.currency = fallback(cols.currency, hints.Currency)
	cols.date = fallback(cols.date, hints.Date)
	return cols
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// recordFromRow builds a record from one data row using resolved column
// indices. Rows with neither an identifiable ISIN nor a description are
// skipped — a row contributes a record only if it carries enough to be
// identifiable.
func recordFromRow(table data.Table, row int, cols columnMap) *data.SecurityRecord {
	cells := table.Cells[row]
	rowText := table.RowText(row)

	rec := &data.SecurityRecord{
		SourcePage: table.Page,
		RawDetails: []string{rowText},
	}

	idCell := cellAt(cells, cols.identifier)
	if m := grammar.ISIN.FindString(idCell); m != "" {
		rec.ISIN = m
	} else if m := grammar.ISIN.FindString(rowText); m != "" {
		rec.ISIN = m
	}

	rec.Description = cellAt(cells, cols.name)
	if rec.Description == "" {
		rec.Description = idCell
	}

	if v, ok := grammar.ParseNumber(cellAt(cells, cols.quantity)); ok {
		rec.Quantity = &v
	}
	if v, ok := grammar.ParseNumber(cellAt(cells, cols.price)); ok {
		rec.Price = &v
	}
	if v, ok := grammar.ParseNumber(cellAt(cells, cols.value)); ok {
		rec.Value = &v
	}
	if c := cellAt(cells, cols.currency); grammar.Currency.MatchString(c) {
		rec.Currency = strings.ToUpper(grammar.Currency.FindString(c))
	}
	if d := cellAt(cells, cols.date); d != "" {
		rec.MaturityDate = d
	}

	if !rec.Identifiable() {
		return nil
	}
	return rec
}

// extractRelaxed implements the generic-table fallback: any row containing
// a bare ISIN becomes a record, with remaining cell values assigned by
// simple type sniffing rather than header lookup, matching the original
// implementation's "no header, no synonyms" last resort.
func extractRelaxed(table data.Table) []*data.SecurityRecord {
	var records []*data.SecurityRecord
	for row := 0; row < table.NumRows(); row++ {
		cells := table.Cells[row]
		rowText := table.RowText(row)

		m := grammar.ISIN.FindString(rowText)
		if m == "" {
			continue
		}

		rec := &data.SecurityRecord{
			ISIN:       m,
			SourcePage: table.Page,
			RawDetails: []string{rowText},
		}
		for _, cell := range cells {
			cell = strings.TrimSpace(cell)
			if cell == "" || strings.Contains(cell, m) {
				continue
			}
			sniffCell(rec, cell)
		}
		records = append(records, rec)
	}
	return records
}

// sniffCell assigns cell to the first still-empty field it looks like it
// belongs to: a "Maturity:"-labelled date, a "Coupon:"-labelled percentage,
// a short number (quantity), or
// — failing those — a long string becomes the description.
func sniffCell(rec *data.SecurityRecord, cell string) {
	if rec.MaturityDate == "" {
		if m := grammar.Maturity.FindStringSubmatch(cell); m != nil {
			rec.MaturityDate = m[1]
			return
		}
	}
	if rec.CouponRate == nil {
		if m := grammar.Coupon.FindStringSubmatch(cell); m != nil {
			if v, ok := grammar.ParseNumber(m[1]); ok {
				rec.CouponRate = &v
				return
			}
		}
	}
	if rec.Quantity == nil && len(cell) < 15 {
		if v, ok := grammar.ParseNumber(cell); ok {
			rec.Quantity = &v
			return
		}
	}
	if rec.Description == "" && len(cell) > minDescriptionLen {
		rec.Description = cell
	}
}
