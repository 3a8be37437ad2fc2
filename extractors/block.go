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

// Package extractors holds the two shared extraction functions:
// ExtractBlockStyle and ExtractTabularStyle. Every registry.FormatDescriptor
// picks one of the two; there is no per-bank extractor type.
package extractors

import (
	"strings"

	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/grammar"
)

// minDescriptionLen is the length a cell's text must exceed for block-style
// extraction to accept it as a security description, mirroring the len(cell_str) > 10 guard
// the reference implementation uses to reject short noise cells.
const minDescriptionLen = 10

// ExtractBlockStyle implements the "ISIN starts a block of following rows"
// extraction strategy: each row carrying a labelled ISIN opens a new record;
// subsequent rows, up to the next ISIN row, contribute supplementary fields
// (maturity, coupon, additional price/value mentions) to that record until
// the table ends or another ISIN row starts the next one.
func ExtractBlockStyle(tables []data.Table) []*data.SecurityRecord {
	var records []*data.SecurityRecord
	var current *data.SecurityRecord

	for _, table := range tables {
		for row := 0; row < table.NumRows(); row++ {
			rowText := table.RowText(row)
			if strings.TrimSpace(rowText) == "" {
				continue
			}

			if m := grammar.ISINLabelled.FindStringSubmatch(rowText); m != nil {
				if current != nil {
					records = append(records, current)
				}
				current = newBlockRecord(m[1], rowText, table.Page, table.Cells[row])
				continue
			}

			if current == nil {
				continue
			}
			current.RawDetails = append(current.RawDetails, rowText)
			applySupplementaryFields(current, rowText)
		}
	}

	if current != nil {
		records = append(records, current)
	}
	return records
}

func newBlockRecord(isin, rowText string, page int, cells []string) *data.SecurityRecord {
	rec := &data.SecurityRecord{
		ISIN:       isin,
		SourcePage: page,
		RawDetails: []string{rowText},
	}

	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if len(cell) > minDescriptionLen && !strings.Contains(strings.ToUpper(cell), "ISIN") {
			rec.Description = cell
			break
		}
	}
	if m := grammar.SecurityName.FindString(rowText); m != "" {
		rec.Description = strings.TrimSpace(m)
	}

	if v, ok := grammar.ParseQuantity(rowText); ok {
		rec.Quantity = &v
	}
	if v, ok := grammar.ParsePrice(rowText); ok {
		rec.Price = &v
	}
	if v, ok := grammar.ParseValue(rowText); ok {
		rec.Value = &v
	}
	applySupplementaryFields(rec, rowText)
	return rec
}

// applySupplementaryFields fills in maturity, coupon, and any price/value
// not yet set, from a continuation row belonging to the current record.
func applySupplementaryFields(rec *data.SecurityRecord, rowText string) {
	if rec.MaturityDate == "" {
		if m := grammar.Maturity.FindStringSubmatch(rowText); m != nil {
			rec.MaturityDate = m[1]
		}
	}
	if rec.CouponRate == nil {
		if m := grammar.Coupon.FindStringSubmatch(rowText); m != nil {
			if v, ok := grammar.ParseNumber(m[1]); ok {
				rec.CouponRate = &v
			}
		}
	}
	if rec.Price == nil {
		if v, ok := grammar.ParsePrice(rowText); ok {
			rec.Price = &v
		}
	}
	if rec.Value == nil {
		if v, ok := grammar.ParseValue(rowText); ok {
			rec.Value = &v
		}
	}
	if rec.Quantity == nil {
		if v, ok := grammar.ParseQuantity(rowText); ok {
			rec.Quantity = &v
		}
	}
}
