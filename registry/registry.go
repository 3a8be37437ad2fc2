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

// Package registry holds one FormatDescriptor data value per supported
// institution, in an ordered slice plus a lookup map — each descriptor
// dispatches to a shared extractor family rather than owning its own
// per-bank extractor type.
package registry

import (
	"regexp"

	"github.com/ledgerleaf/secextract/data"
)

// HeaderSynonyms maps a logical tabular column to the header-row phrases
// that identify it, plus a fallback index to use when no synonym matches.
type HeaderSynonyms struct {
	Synonyms     []string
	FallbackCol  int
}

// TableHints describes how to find column meaning in a tabular-style
// document for one format.
type TableHints struct {
	Identifier HeaderSynonyms
	Name       HeaderSynonyms
	Quantity   HeaderSynonyms
	Price      HeaderSynonyms
	Value      HeaderSynonyms
	Currency   HeaderSynonyms
	Date       HeaderSynonyms
}

// FormatDescriptor is the registry's one-value-per-institution record.
type FormatDescriptor struct {
	Tag              data.FormatTag
	DetectPatterns   []*regexp.Regexp
	DefaultCurrency  string
	Family           data.ExtractorFamily
	TableHints       TableHints
}

// Registry is the ordered, declaration-order list of supported formats.
// detector.Detect tests patterns in this exact order; messos and legacy
// bank formats precede retail-broker formats, and generic — whose
// DetectPatterns is empty — is always last.
var Registry []*FormatDescriptor

// ByTag indexes Registry by Tag for O(1) lookup once a format is known.
var ByTag map[data.FormatTag]*FormatDescriptor

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

func synonyms(fallback int, words ...string) HeaderSynonyms {
	return HeaderSynonyms{Synonyms: words, FallbackCol: fallback}
}

func brokerHints() TableHints {
	return TableHints{
		Identifier: synonyms(0, "isin", "cusip", "symbol"),
		Name:       synonyms(1, "description", "security", "name"),
		Quantity:   synonyms(2, "quantity", "qty", "shares", "units"),
		Price:      synonyms(3, "price", "last price", "market price"),
		Value:      synonyms(4, "value", "market value", "total value", "amount"),
		Currency:   synonyms(5, "currency", "ccy"),
		Date:       synonyms(6, "maturity", "date"),
	}
}

func init() {
	Registry = []*FormatDescriptor{
		{
			Tag:             data.Messos,
			DetectPatterns:  []*regexp.Regexp{re(`messos`), re(`cornèr\s*banca`), re(`corner\s*bank`)},
			DefaultCurrency: "USD",
			Family:          data.BlockStyle,
		},
		{
			Tag:             data.BofA,
			DetectPatterns:  []*regexp.Regexp{re(`bank of america`), re(`merrill lynch`)},
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.UBS,
			DetectPatterns:  []*regexp.Regexp{re(`\bubs\b`), re(`union bank of switzerland`)},
			DefaultCurrency: "CHF",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.DeutscheBank,
			DetectPatterns:  []*regexp.Regexp{re(`deutsche bank`)},
			DefaultCurrency: "EUR",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.MorganStanley,
			DetectPatterns:  []*regexp.Regexp{re(`morgan stanley`)},
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.InteractiveBrokers,
			DetectPatterns:  []*regexp.Regexp{re(`interactive brokers`), re(`\bibkr\b`)},
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.Schwab,
			DetectPatterns:  []*regexp.Regexp{re(`charles schwab`), re(`\bschwab\b`)},
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.Vanguard,
			DetectPatterns:  []*regexp.Regexp{re(`vanguard brokerage`), re(`\bvanguard\b`)},
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.Fidelity,
			DetectPatterns:  []*regexp.Regexp{re(`fidelity investments`), re(`\bfidelity\b`)},
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.TDAmeritrade,
			DetectPatterns:  []*regexp.Regexp{re(`td ameritrade`)},
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.ETrade,
			DetectPatterns:  []*regexp.Regexp{re(`e\*?trade`)},
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
		{
			Tag:             data.Generic,
			DetectPatterns:  nil, // empty: always the fallback, never a detector match
			DefaultCurrency: "USD",
			Family:          data.TabularStyle,
			TableHints:      brokerHints(),
		},
	}

	ByTag = make(map[data.FormatTag]*FormatDescriptor, len(Registry))
	for _, d := range Registry {
		ByTag[d.Tag] = d
	}
}
