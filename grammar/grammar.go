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

// Package grammar is the closed set of compiled regular-expression patterns
// used throughout the engine to recognize ISINs, quantities, prices, values,
// currencies, maturities, coupons and security names inside raw statement
// text. Patterns are compiled once, here, at package init; format extractors
// reference them by name rather than redefining them.
package grammar

import (
	"regexp"
	"strconv"
	"strings"
)

// ISIN matches a 12-character identifier: 2 letter country, 9 alphanumeric
// body, 1 numeric check digit.
var ISIN = regexp.MustCompile(`\b([A-Z]{2}[A-Z0-9]{9}[0-9])\b`)

// ISINLabelled matches an "ISIN: XXXXXXXXXXXX" style label, the shape the
// block-style extractors key their row-splitting off of.
var ISINLabelled = regexp.MustCompile(`(?i)ISIN[:\s]*([A-Z]{2}[A-Z0-9]{9}[0-9])`)

// CUSIP and SEDOL are the secondary identifier forms; accepted but never
// preferred over an ISIN.
var (
	CUSIP = regexp.MustCompile(`\b([A-Z0-9]{9})\b`)
	SEDOL = regexp.MustCompile(`\b([A-Z0-9]{7})\b`)
)

// Quantity patterns, tried in priority order.
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([\d.,']+)\s*(?:shares|units|bonds|stocks|pieces)\b`),
	regexp.MustCompile(`(?i)(?:quantity|amount|units|nominal|position size|holding)\s*[:=]\s*([\d.,']+)`),
	regexp.MustCompile(`(?i)([\d.,']+)\s*[A-Z]{3}\s*nominal`),
	regexp.MustCompile(`(?im)^(?:shares|units|quantity|amount)\s*[:=]\s*([\d.,']+)`),
	regexp.MustCompile(`(?i)(?:qty|quant|pos)\s*[:=]\s*([\d.,']+)`),
	regexp.MustCompile(`\b(\d{1,3}(?:[.,']\d{3})*(?:\.\d)?)\b`),
}

// Price patterns.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[$€£]\s*([\d.,']+)`),
	regexp.MustCompile(`([\d.,']+)\s*(?:USD|EUR|CHF|GBP)\b`),
	regexp.MustCompile(`(?i)(?:price|rate)\s*[:=]\s*([\d.,']+)`),
}

// Value patterns — same shapes as price but typically larger magnitudes, or
// an explicit value/worth/total/amount label.
var valuePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[$€£]\s*([\d.,']+)`),
	regexp.MustCompile(`([\d.,']+)\s*(?:USD|EUR|CHF|GBP)\b`),
	regexp.MustCompile(`(?i)(?:value|worth|total|amount)\s*[:=]\s*([\d.,']+)`),
}

// Currency recognizes ISO-4217 codes from the supported set, or an explicit
// "currency/in XXX" mention.
var Currency = regexp.MustCompile(`\b(USD|EUR|CHF|GBP|JPY|CAD|AUD|HKD)\b`)
var CurrencyMention = regexp.MustCompile(`(?i)(?:currency|in)\s*[:=]?\s*(USD|EUR|CHF|GBP|JPY|CAD|AUD|HKD)\b`)

// Maturity recognizes "Maturity: DD.MM.YYYY" and ISO/slash variants.
var Maturity = regexp.MustCompile(`(?i)maturity\s*[:=]\s*(\d{1,2}[./]\d{1,2}[./]\d{2,4}|\d{4}-\d{2}-\d{2})`)

// Coupon recognizes "Coupon: N%".
var Coupon = regexp.MustCompile(`(?i)coupon\s*[:=]\s*([\d.,]+)\s*%`)

// SecurityName recognizes a capitalized phrase ending in a corporate suffix
// token, the same suffix list NormalizeName strips (reference package).
var SecurityName = regexp.MustCompile(`\b([A-Z][A-Za-z0-9&.,' -]+(?:Incorporated|Inc|Corp|Corporation|Co|Company|Ltd|Limited|LLC|SA|AG|NV|PLC)\.?)\b`)

// CurrencySymbols maps literal currency symbols/prefixes to ISO codes, used
// by the currency resolver's mention-counting pass.
var CurrencySymbols = map[string]string{
	"$":   "USD",
	"€":   "EUR",
	"£":   "GBP",
	"¥":   "JPY",
	"Fr.": "CHF",
	"C$":  "CAD",
	"A$":  "AUD",
	"HK$": "HKD",
}

// ParseQuantity tries each quantity pattern in priority order and returns
// the first numeric parse, or (0, false) if none matched.
func ParseQuantity(text string) (float64, bool) {
	for _, re := range quantityPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, ok := ParseNumber(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// ParsePrice tries each price pattern in order.
func ParsePrice(text string) (float64, bool) {
	for _, re := range pricePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, ok := ParseNumber(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// ParseValue tries each value pattern in order.
func ParseValue(text string) (float64, bool) {
	for _, re := range valuePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, ok := ParseNumber(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// ParseNumber accepts ' , . as thousands separators, treats the final
// separator before ≤2 trailing digits as the decimal point, strips currency
// symbols and trailing non-digits, and yields (value, true) or (0, false) if
// nothing numeric remains.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	// strip currency symbols/prefixes and any trailing non-numeric noise
	s = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "").Replace(s)
	s = strings.TrimRightFunc(strings.TrimSpace(s), func(r rune) bool { return r < '0' || r > '9' })

	// find the last separator (. , ') that is followed by <=2 digits to the
	// end of the numeric run — that one is the decimal point.
	decimalIdx := -1
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c == '.' || c == ',' || c == '\'' {
			trailing := len(s) - i - 1
			if trailing >= 1 && trailing <= 2 {
				decimalIdx = i
			}
			break
		}
		if c < '0' || c > '9' {
			break
		}
	}

	var intPart, fracPart strings.Builder
	target := &intPart
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
			target.WriteRune(c)
		case c == '.' || c == ',' || c == '\'':
			if i == decimalIdx {
				target = &fracPart
			}
			// else: thousands separator, drop it
		default:
			// ignore any other character (symbols, letters, percent signs)
		}
	}

	if intPart.Len() == 0 && fracPart.Len() == 0 {
		return 0, false
	}

	numStr := intPart.String()
	if fracPart.Len() > 0 {
		numStr += "." + fracPart.String()
	}

	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
