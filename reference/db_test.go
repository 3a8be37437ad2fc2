// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateISIN(t *testing.T) {
	assert.True(t, ValidateISIN("US0378331005"))
	assert.False(t, ValidateISINFormat("US12345678901"))
	assert.True(t, ValidateISINFormat("XX0378331005"))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Apple", NormalizeName("apple inc."))
	assert.Equal(t, "Microsoft", NormalizeName("Microsoft Corporation"))
	assert.Equal(t, "Acme", NormalizeName("  Acme   Co.  "))
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, s := range []string{"apple inc.", "Microsoft Corporation", "  Acme   Co.  ", "Already Clean"} {
		once := NormalizeName(s)
		twice := NormalizeName(once)
		assert.Equal(t, once, twice)
	}
}

func TestDetectType(t *testing.T) {
	typ, ok := DetectType("US Treasury Bond 2030")
	assert.True(t, ok)
	assert.Equal(t, "bond", string(typ))

	typ, ok = DetectType("Vanguard Total Market ETF")
	assert.True(t, ok)
	assert.Equal(t, "etf", string(typ))
}

func TestLookupByISINSeed(t *testing.T) {
	db := New()
	entry, ok := db.LookupByISIN("US0378331005")
	assert.True(t, ok)
	assert.Equal(t, "Apple Inc.", entry.CanonicalName)

	_, ok = db.LookupByISIN("ZZZZZZZZZZZZ")
	assert.False(t, ok)
}

func TestLookupByNameFuzzy(t *testing.T) {
	db := New()
	match, ok := db.LookupByName("Apple")
	assert.True(t, ok)
	assert.Equal(t, "US0378331005", match.Entry.ISIN)
}
