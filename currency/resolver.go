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

// Package currency resolves the single reporting currency a document's
// values are assumed to be denominated in, via a three-step fallback.
package currency

import (
	"regexp"
	"strings"

	"github.com/ledgerleaf/secextract/grammar"
)

// explicitPhrase matches a labelled valuation/reporting/base currency
// statement, step 1 of the resolution order.
var explicitPhrase = regexp.MustCompile(`(?i)(?:valuation|reporting|base)\s+currency\s*[:=]?\s*(USD|EUR|CHF|GBP|JPY|CAD|AUD|HKD)\b`)

// tieBreakOrder is the deterministic order ties are broken in during the
// mention-counting pass.
var tieBreakOrder = []string{"USD", "EUR", "CHF", "GBP", "JPY", "CAD", "AUD", "HKD"}

// Resolve determines the document currency from its first-N-pages text
// (e.g. tableadapter.JoinText's output), falling back to formatDefault
// (the registry FormatDescriptor's DefaultCurrency) when no signal exists
// in the text at all.
func Resolve(text string, formatDefault string) string {
	if m := explicitPhrase.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}

	counts := map[string]int{}
	for sym, code := range grammar.CurrencySymbols {
		counts[code] += strings.Count(text, sym)
	}
	for _, m := range grammar.Currency.FindAllString(text, -1) {
		counts[strings.ToUpper(m)]++
	}

	best, bestCount := "", 0
	for _, code := range tieBreakOrder {
		if counts[code] > bestCount {
			best, bestCount = code, counts[code]
		}
	}
	if bestCount > 0 {
		return best
	}

	if formatDefault != "" {
		return formatDefault
	}
	return "USD"
}
