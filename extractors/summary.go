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
	"regexp"
	"strings"

	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/grammar"
)

var (
	clientNumberPattern      = regexp.MustCompile(`(?i)client\s+number\s*/{0,2}\s*(\d+)`)
	valuationDatePattern     = regexp.MustCompile(`(?i)as\s+of\s+(\d{2}[./]\d{2}[./]\d{4})`)
	valuationCurrencyPattern = regexp.MustCompile(`(?i)valuation\s+currency\s*/{0,2}\s*([A-Za-z]{3})`)
	totalValuePattern        = regexp.MustCompile(`(?i)total\b.{0,40}?(\d[\d'.,]*)`)
	performancePattern       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// ExtractSummary scans a block-style document's rows for the portfolio
// header fields messos-family statements carry: client number, valuation
// date/currency, stated total, and overall performance. Grounded on
// enhanced_securities_extractor.py's _extract_messos_summary, which treats
// each field as independently optional — a miss on one never prevents
// recovering the others. Returns nil if nothing at all was found.
func ExtractSummary(tables []data.Table) *data.PortfolioSummary {
	summary := &data.PortfolioSummary{}
	found := false

	for _, table := range tables {
		for row := 0; row < table.NumRows(); row++ {
			rowText := table.RowText(row)
			if rowText == "" {
				continue
			}
			lower := strings.ToLower(rowText)

			if summary.ClientNumber == "" {
				if m := clientNumberPattern.FindStringSubmatch(rowText); m != nil {
					summary.ClientNumber = m[1]
					found = true
				}
			}
			if summary.ValuationDate == "" {
				if m := valuationDatePattern.FindStringSubmatch(rowText); m != nil {
					summary.ValuationDate = m[1]
					found = true
				}
			}
			if summary.ValuationCurrency == "" {
				if m := valuationCurrencyPattern.FindStringSubmatch(rowText); m != nil {
					summary.ValuationCurrency = strings.ToUpper(m[1])
					found = true
				}
			}
			if summary.TotalValue == "" && strings.Contains(lower, "total") &&
				(strings.Contains(lower, "asset") || strings.Contains(lower, "portfolio")) {
				if m := totalValuePattern.FindStringSubmatch(rowText); m != nil {
					summary.TotalValue = m[1]
					found = true
				}
			}
			if summary.PerformancePercent == nil && strings.Contains(lower, "performance") && strings.Contains(rowText, "%") {
				if m := performancePattern.FindStringSubmatch(rowText); m != nil {
					if v, ok := grammar.ParseNumber(m[1]); ok {
						summary.PerformancePercent = &v
						found = true
					}
				}
			}
		}
	}

	if !found {
		return nil
	}
	if summary.TotalValue != "" {
		if v, ok := grammar.ParseNumber(summary.TotalValue); ok {
			summary.TotalValueFloat = v
		}
	}
	return summary
}

// allocationCategory pairs a result key with the row keywords that identify
// it and the substrings that disqualify a row even when a keyword hits
// (e.g. a "Bonds" header row that is actually describing a bond fund).
// Grounded on _extract_messos_asset_allocation's per-category keyword and
// exclusion lists.
type allocationCategory struct {
	key     string
	include []string
	exclude []string
}

var allocationCategories = []allocationCategory{
	{key: "liquidity", include: []string{"liquidity"}},
	{key: "bonds", include: []string{"bonds"}, exclude: []string{"funds", "convertible", "assets", "asset"}},
	{key: "equities", include: []string{"equities"}, exclude: []string{"funds", "assets", "asset"}},
	{key: "structured_products", include: []string{"structured products", "structured product"}, exclude: []string{"assets", "asset"}},
	{key: "other", include: []string{"other assets", "other"}},
}

// ExtractAssetAllocation scans a block-style document's rows for the
// liquidity/bonds/equities/structured-products/other breakdown a messos
// portfolio summary page carries. For each category it finds the first row
// matching that category's keyword (and none of its exclusions), then reads
// the first numeric cell as the bucket value and the first later cell
// containing a percent sign as its share. Grounded on
// enhanced_securities_extractor.py's _extract_messos_asset_allocation.
// Returns nil if no category matched anywhere.
func ExtractAssetAllocation(tables []data.Table) data.AssetAllocation {
	result := data.AssetAllocation{}

	for _, table := range tables {
		for row := 0; row < table.NumRows(); row++ {
			cells := table.Cells[row]
			rowText := strings.ToLower(table.RowText(row))
			if rowText == "" {
				continue
			}

			for _, cat := range allocationCategories {
				if _, done := result[cat.key]; done {
					continue
				}
				if !containsAny(rowText, cat.include) {
					continue
				}
				if containsAny(rowText, cat.exclude) {
					continue
				}
				if entry, ok := allocationEntryFromCells(cells); ok {
					result[cat.key] = entry
				}
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// allocationEntryFromCells finds the first numeric cell after the category
// label and, if a later cell carries a percent sign, reads that as the
// bucket's share of the portfolio.
func allocationEntryFromCells(cells []string) (data.AllocationCategory, bool) {
	for i, cell := range cells {
		v, ok := grammar.ParseNumber(cell)
		if !ok {
			continue
		}
		entry := data.AllocationCategory{Value: strings.TrimSpace(cell), ValueFloat: v}
		for j := i + 1; j < len(cells); j++ {
			if strings.Contains(cells[j], "%") {
				if pv, ok := grammar.ParseNumber(strings.ReplaceAll(cells[j], "%", "")); ok {
					entry.Percentage = pv
				}
				break
			}
		}
		return entry, true
	}
	return data.AllocationCategory{}, false
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
