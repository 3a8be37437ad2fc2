// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveExplicitPhrase(t *testing.T) {
	assert.Equal(t, "CHF", Resolve("Portfolio Valuation Currency: CHF as of today", "USD"))
}

func TestResolveByMentionCount(t *testing.T) {
	text := "100 EUR 200 EUR 50 USD"
	assert.Equal(t, "EUR", Resolve(text, "USD"))
}

func TestResolveTieBreak(t *testing.T) {
	text := "100 USD 100 EUR"
	assert.Equal(t, "USD", Resolve(text, "CHF"))
}

func TestResolveFallsBackToFormatDefault(t *testing.T) {
	assert.Equal(t, "CHF", Resolve("no currency signal here at all", "CHF"))
}

func TestResolveFallsBackToUSD(t *testing.T) {
	assert.Equal(t, "USD", Resolve("no currency signal here at all", ""))
}
