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

// Package postprocess runs a fixed-order normalize/enrich/reconcile
// pipeline over a batch of raw SecurityRecords produced by the extractors
// package. The pipeline is idempotent and order-preserving: running it
// twice on its own output, or shuffling record order, never changes the
// result beyond record position.
package postprocess

import (
	"math"
	"strings"

	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/reference"
)

// valueTolerance is the maximum fractional discrepancy between a record's
// stored value and quantity*price before the stored value is replaced and
// flagged.
const valueTolerance = 0.2

// priceFloor/priceCeil bound the "reasonable price" range a scale-
// correction pass considers before trying a x100/÷100 adjustment.
const (
	priceFloor = 0.01
	priceCeil  = 50000.0
)

const (
	confidenceBaseWeight   = 0.6
	confidenceDetailWeight = 0.4
)

// Run executes the full pipeline over records in place and returns them,
// along with any warnings raised along the way. db may be nil, in which
// case reference enrichment and the ISIN-based canonical-name override are
// skipped; type detection and name normalization still run.
func Run(records []*data.SecurityRecord, db *reference.DB, documentCurrency string) ([]*data.SecurityRecord, []string) {
	var warnings []string

	validateISINs(records)
	enrichFromReference(records, db)
	assignCurrency(records, documentCurrency)
	deriveMissingArithmetic(records)
	correctPriceScale(records)
	reconcileValues(records)
	detectTypes(records, db)
	normalizeNames(records, db)
	computeWeights(records)
	scoreConfidence(records)
	flagMissingRequired(records)

	return records, warnings
}

// validateISINs flags syntactically invalid ISINs; the check digit is not
// verified here. Records without an ISIN at all are left to name-based
// enrichment.
func validateISINs(records []*data.SecurityRecord) {
	for _, r := range records {
		if r.ISIN == "" {
			continue
		}
		if !reference.ValidateISINFormat(r.ISIN) {
			r.AddIssue(data.IssueInvalidISIN)
		}
	}
}

// enrichFromReference fills in a canonical description via ISIN lookup when
// the description is empty or a placeholder, or — when a record has a
// description but no ISIN — via fuzzy name lookup.
func enrichFromReference(records []*data.SecurityRecord, db *reference.DB) {
	if db == nil {
		return
	}
	for _, r := range records {
		if r.ISIN != "" {
			if entry, ok := db.LookupByISIN(r.ISIN); ok {
				if DescriptionLooksUnset(r.Description) {
					r.Description = entry.CanonicalName
					r.NameSource = "reference_db"
				}
				if r.Ticker == "" {
					r.Ticker = entry.Ticker
				}
				continue
			}
		}
		if r.ISIN == "" && r.Description != "" {
			if match, ok := db.LookupByName(r.Description); ok {
				r.Description = match.Entry.CanonicalName
				r.ISIN = match.Entry.ISIN
				r.Ticker = match.Entry.Ticker
				r.NameSource = "name_lookup"
				if match.Quality == data.MatchPartial {
					r.AddIssue(data.IssueNameAmbiguous)
				}
			}
		}
	}
}

// assignCurrency gives every record without an explicit currency the
// resolved document currency.
func assignCurrency(records []*data.SecurityRecord, documentCurrency string) {
	for _, r := range records {
		if r.Currency == "" {
			r.Currency = documentCurrency
		}
	}
}

// deriveMissingArithmetic fills in whichever one of quantity/price/value is
// missing from the other two, via quantity*price=value, flagging which
// field was derived.
func deriveMissingArithmetic(records []*data.SecurityRecord) {
	for _, r := range records {
		switch {
		case r.Quantity != nil && r.Price != nil && r.Value == nil:
			v := *r.Quantity * *r.Price
			r.Value = &v
			r.ValueDerived = true
		case r.Quantity != nil && r.Price == nil && r.Value != nil && *r.Quantity != 0:
			p := *r.Value / *r.Quantity
			r.Price = &p
			r.PriceDerived = true
		case r.Quantity == nil && r.Price != nil && r.Value != nil && *r.Price != 0:
			q := *r.Value / *r.Price
			r.Quantity = &q
			r.QuantityDerived = true
		}
	}
}

// correctPriceScale tries a x100/÷100 adjustment when a price falls outside
// the plausible range and doing so brings quantity*price closer to the
// stated value — a common artifact of cents/percent-of-par confusion.
func correctPriceScale(records []*data.SecurityRecord) {
	for _, r := range records {
		if r.Price == nil || r.Quantity == nil || r.Value == nil {
			continue
		}
		price := *r.Price
		if price >= priceFloor && price <= priceCeil {
			continue
		}

		var adjusted float64
		if price < priceFloor {
			adjusted = price * 100
		} else {
			adjusted = price / 100
		}

		current := math.Abs(*r.Quantity*price - *r.Value)
		candidate := math.Abs(*r.Quantity*adjusted - *r.Value)
		if candidate < current {
			r.Price = &adjusted
		}
	}
}

// reconcileValues flags records whose stored value disagrees with
// quantity*price by more than valueTolerance, replacing the stored value
// with the calculated one rather than dropping the record.
func reconcileValues(records []*data.SecurityRecord) {
	for _, r := range records {
		if r.Quantity == nil || r.Price == nil || r.Value == nil {
			continue
		}
		calculated := *r.Quantity * *r.Price
		actual := *r.Value
		denom := math.Max(math.Abs(actual), 1)
		if math.Abs(calculated-actual)/denom > valueTolerance {
			r.AddIssue(data.IssueValueInconsistent)
			r.Value = &calculated
			r.ValueDerived = true
		}
	}
}

// detectTypes fills in SecurityType from the description when the
// extractor didn't already set one, via the reference package's keyword
// table.
func detectTypes(records []*data.SecurityRecord, db *reference.DB) {
	for _, r := range records {
		if r.SecurityType != "" || r.Description == "" {
			continue
		}
		if t, ok := reference.DetectType(r.Description); ok {
			r.SecurityType = t
		}
	}
}

// normalizeNames applies reference.NormalizeName to every description that
// didn't already come from a reference-DB lookup (those are canonical
// already), idempotently.
func normalizeNames(records []*data.SecurityRecord, db *reference.DB) {
	for _, r := range records {
		if r.Description == "" || r.NameSource == "reference_db" {
			continue
		}
		r.Description = reference.NormalizeName(r.Description)
		if db != nil {
			if entry, ok := db.LookupByISIN(r.ISIN); ok && entry.CanonicalName != "" {
				r.Description = entry.CanonicalName
			}
		}
	}
}

// computeWeights assigns each record's percentage share of total portfolio
// value, then renormalizes so weights sum to 100 ± 0.1 via a second pass.
func computeWeights(records []*data.SecurityRecord) {
	var total float64
	for _, r := range records {
		if r.Value != nil {
			total += *r.Value
		}
	}
	if total <= 0 {
		return
	}

	for _, r := range records {
		if r.Value == nil {
			continue
		}
		w := round2(*r.Value / total * 100)
		r.Weight = &w
	}

	var weightSum float64
	for _, r := range records {
		if r.Weight != nil {
			weightSum += *r.Weight
		}
	}
	if weightSum <= 0 {
		return
	}
	for _, r := range records {
		if r.Weight == nil {
			continue
		}
		w := round2(*r.Weight / weightSum * 100)
		r.Weight = &w
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// scoreConfidence sets ExtractionConfidence as a weighted sum of "has the
// identifying field" (ISIN present and valid) and "has the supporting
// detail fields" (quantity, price, value, currency all present), weighted
// 0.6/0.4.
func scoreConfidence(records []*data.SecurityRecord) {
	for _, r := range records {
		base := 0.0
		if r.ISIN != "" && !r.HasIssue(data.IssueInvalidISIN) {
			base = 1.0
		} else if r.ISIN != "" {
			base = 0.5
		}

		detailFields := 0
		const totalDetailFields = 4
		if r.Quantity != nil {
			detailFields++
		}
		if r.Price != nil {
			detailFields++
		}
		if r.Value != nil {
			detailFields++
		}
		if r.Currency != "" {
			detailFields++
		}
		detail := float64(detailFields) / float64(totalDetailFields)

		r.ExtractionConfidence = round2(base*confidenceBaseWeight + detail*confidenceDetailWeight)
	}
}

// flagMissingRequired marks records lacking either of the things a record
// needs to be useful downstream: an identifier (ISIN or description) or a
// value.
func flagMissingRequired(records []*data.SecurityRecord) {
	for _, r := range records {
		if r.ISIN == "" && r.Description == "" {
			r.AddIssue(data.IssueMissingRequired)
		}
		if r.Value == nil {
			r.AddIssue(data.IssueMissingRequired)
		}
	}
}

// DescriptionLooksUnset reports whether s is empty or a known placeholder
// description the extractors sometimes leave behind; enrichFromReference
// uses it to decide whether an ISIN lookup should overwrite the description.
func DescriptionLooksUnset(s string) bool {
	return s == "" || strings.HasPrefix(s, "Securities:")
}
