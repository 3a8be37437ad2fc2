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

// Package reference implements an in-memory, read-after-init mapping from
// identifiers and canonical names to security metadata, used by the
// post-processor to enrich and disambiguate extracted records.
//
// The reverse indices are backed by alphadose/haxmap, a lock-free concurrent
// map, letting multiple parallel extractions share one read-only DB without
// a mutex.
package reference

import (
	"embed"
	"encoding/json"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/alphadose/haxmap"
	"github.com/gocarina/gocsv"
	"github.com/ledgerleaf/secextract/data"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameCaser title-cases security names recovered in all-lowercase form
// (e.g. from a statement rendered in uppercase/lowercase-only text).
var nameCaser = cases.Title(language.English)

//go:embed seed.json
var seedFS embed.FS

var isinFormat = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// corporateSuffixes are stripped from the end of a name during
// normalization.
var corporateSuffixes = []string{
	"Incorporated", "Corporation", "Company", "Limited",
	"Inc", "Corp", "Co", "Ltd", "LLC", "SA", "AG", "NV", "PLC",
}

var suffixPattern = regexp.MustCompile(`(?i)\s*,?\s*\b(` + strings.Join(corporateSuffixes, "|") + `)\.?\s*$`)

// typeKeywords maps a SecurityType to the phrases that identify it in a free
// text description. Order matters: Equity is checked last so that a bond or
// fund description mentioning "share class" doesn't shadow a more specific
// type.
var typeKeywords = []struct {
	t        data.SecurityType
	keywords []string
}{
	{data.Crypto, []string{"crypto", "cryptocurrency", "token", "coin"}},
	{data.REIT, []string{"reit", "real estate investment trust"}},
	{data.Commodity, []string{"commodity", "gold", "silver", "oil", "gas"}},
	{data.Option, []string{"option", "call", "put", "warrant"}},
	{data.Future, []string{"future", "futures contract"}},
	{data.ETF, []string{"etf", "exchange traded fund", "exchange-traded"}},
	{data.Fund, []string{"mutual fund", "investment fund", "hedge fund", "index fund", "fund"}},
	{data.Bond, []string{"bond", "note", "debt", "treasury", "debenture", "gilt"}},
	{data.Equity, []string{"stock", "share", "common", "preferred", "ordinary", "class a", "class b"}},
}

// DB is the Reference Database. The zero value is not usable; construct
// with New.
type DB struct {
	byISIN *haxmap.Map[string, data.ReferenceEntry]
	byName *haxmap.Map[string, data.ReferenceEntry] // keyed by normalized, lower-cased name
}

// New constructs a DB preloaded with the bundled seed set.
func New() *DB {
	db := &DB{
		byISIN: haxmap.New[string, data.ReferenceEntry](),
		byName: haxmap.New[string, data.ReferenceEntry](),
	}
	if b, err := seedFS.ReadFile("seed.json"); err == nil {
		_ = db.loadJSON(b)
	}
	return db
}

// LookupByISIN returns the entry for id, or (zero, false) if not found.
// Lookups never raise; misses are reported, not errors.
func (db *DB) LookupByISIN(id string) (data.ReferenceEntry, bool) {
	return db.byISIN.Get(id)
}

// LookupByName performs a fuzzy name match: bidirectional substring
// containment, score = len(shorter)/max(len(longer),1), accept if score >=
// 0.5, return the highest-scoring entry. Names shorter than 4 characters are
// excluded from the candidate pool to avoid spurious matches.
func (db *DB) LookupByName(name string) (data.NameMatch, bool) {
	if name == "" {
		return data.NameMatch{}, false
	}
	query := strings.ToLower(NormalizeName(name))
	if query == "" {
		return data.NameMatch{}, false
	}

	if entry, ok := db.byName.Get(query); ok {
		return data.NameMatch{Entry: entry, Quality: data.MatchExact, Score: 1.0}, true
	}

	var best data.NameMatch
	found := false

	db.byName.ForEach(func(candidate string, entry data.ReferenceEntry) bool {
		if len(candidate) < 4 {
			return true
		}
		if !strings.Contains(candidate, query) && !strings.Contains(query, candidate) {
			return true
		}
		shorter, longer := len(candidate), len(query)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		score := float64(shorter) / float64(max(longer, 1))
		if score >= 0.5 && score > best.Score {
			best = data.NameMatch{Entry: entry, Quality: data.MatchPartial, Score: score}
			found = true
		}
		return true
	})

	return best, found
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// NormalizeName strips trailing corporate suffixes, collapses whitespace,
// and title-cases all-lowercase input.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	for {
		t := strings.TrimSpace(strings.TrimRight(suffixPattern.ReplaceAllString(s, ""), ","))
		if t == s {
			break
		}
		s = t
	}

	if s == strings.ToLower(s) {
		s = nameCaser.String(s)
	}
	return s
}

// DetectType scans description against the type keyword table and returns
// the first matching SecurityType, or ("", false) if nothing matches.
func DetectType(description string) (data.SecurityType, bool) {
	if description == "" {
		return "", false
	}
	lower := strings.ToLower(description)
	for _, tk := range typeKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(lower, kw) {
				return tk.t, true
			}
		}
	}
	return "", false
}

// ValidateISIN checks the syntactic format and the modulus-10 check digit.
// Post-processing runs only the syntactic check (ValidateISINFormat) when
// deciding whether to flag IssueInvalidISIN; the checksum is a separate,
// stricter policy callers can opt into.
func ValidateISIN(id string) bool {
	return ValidateISINFormat(id) && validateISINChecksum(id)
}

// ValidateISINFormat checks only the regex shape, without the checksum.
func ValidateISINFormat(id string) bool {
	return isinFormat.MatchString(id)
}

// validateISINChecksum implements the Luhn-mod-10 check using the standard
// ISIN digit-expansion scheme (letters expand to their base-36 value).
func validateISINChecksum(id string) bool {
	if len(id) != 12 {
		return false
	}
	var expanded strings.Builder
	for _, c := range id[:11] {
		v, err := strconv.ParseInt(string(c), 36, 64)
		if err != nil {
			return false
		}
		expanded.WriteString(strconv.FormatInt(v, 10))
	}
	s := expanded.String()
	sum := 0
	// weights alternate 2,1,2,1,... counting from the rightmost expanded
	// digit; a weighted value over 9 contributes the sum of its own digits
	// (e.g. 12 contributes 1+2=3), equivalent to subtracting 9.
	for i := 0; i < len(s); i++ {
		d := int(s[i] - '0')
		weight := 1
		if (len(s)-1-i)%2 == 0 {
			weight = 2
		}
		v := d * weight
		if v > 9 {
			v -= 9
		}
		sum += v
	}
	checkDigit := (10 - sum%10) % 10
	want := int(id[11] - '0')
	return want == checkDigit
}

// LoadFile loads a reference-data file: JSON by default, or CSV when path
// ends in .csv. Later entries win on ISIN collision; malformed entries are
// skipped rather than aborting the load.
func (db *DB) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		return db.loadCSV(b)
	}
	return db.loadJSON(b)
}

func (db *DB) loadJSON(b []byte) error {
	var file data.ReferenceFile
	if err := json.Unmarshal(b, &file); err != nil {
		return err
	}
	for _, e := range file.Securities {
		if e.ISIN == "" || e.Name == "" {
			continue // malformed entry
		}
		db.insert(data.ReferenceEntry{
			ISIN:          e.ISIN,
			CanonicalName: e.Name,
			Ticker:        e.Ticker,
			Exchange:      e.Exchange,
			SecurityType:  data.SecurityType(e.SecurityType),
		})
	}
	return nil
}

// csvRow is the gocsv-bound row shape for the CSV reference-file variant.
type csvRow struct {
	ISIN         string `csv:"isin"`
	Name         string `csv:"name"`
	Ticker       string `csv:"ticker"`
	Exchange     string `csv:"exchange"`
	SecurityType string `csv:"security_type"`
}

func (db *DB) loadCSV(b []byte) error {
	var rows []*csvRow
	if err := gocsv.UnmarshalBytes(b, &rows); err != nil {
		return err
	}
	for _, r := range rows {
		if r.ISIN == "" || r.Name == "" {
			continue
		}
		db.insert(data.ReferenceEntry{
			ISIN:          r.ISIN,
			CanonicalName: r.Name,
			Ticker:        r.Ticker,
			Exchange:      r.Exchange,
			SecurityType:  data.SecurityType(r.SecurityType),
		})
	}
	return nil
}

func (db *DB) insert(e data.ReferenceEntry) {
	db.byISIN.Set(e.ISIN, e)
	db.byName.Set(strings.ToLower(NormalizeName(e.CanonicalName)), e)
}
