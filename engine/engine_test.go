// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextMessos(t *testing.T) {
	text := `MESSOS ENTERPRISES
Portfolio Valuation Currency: USD
ISIN: US0378331005 Apple Inc. 100 shares $150.00 $15,000.00
ISIN: US5949181045 Microsoft Corporation 50 shares $300.00 $15,000.00`

	e := New()
	result := e.ExtractText(text, nil)

	require.Empty(t, result.Error)
	assert.Equal(t, "messos", result.DocumentFormat)
	assert.Equal(t, "USD", result.Currency)
	require.Len(t, result.Securities, 2)
	assert.Equal(t, "US0378331005", result.Securities[0].ISIN)
	assert.NotEqual(t, result.RunID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestExtractTextGenericTabular(t *testing.T) {
	text := `Holdings Report
ISIN          Description          Quantity  Price   Value    Currency
US0378331005  Apple Inc.           100       150.00  15000.00 USD`

	e := New()
	result := e.ExtractText(text, nil)

	require.Empty(t, result.Error)
	require.Len(t, result.Securities, 1)
	assert.Equal(t, "US0378331005", result.Securities[0].ISIN)
}

func TestExtractMissingFileReturnsErrorResult(t *testing.T) {
	e := New()
	result := e.Extract("/nonexistent/path/does-not-exist.pdf")
	assert.NotEmpty(t, result.Error)
	assert.Contains(t, strings.ToLower(result.Error), "not found")
	assert.Equal(t, "unknown", result.DocumentFormat)
	assert.NotNil(t, result.Securities)
}

func TestExtractBlankPathReturnsInvalidPath(t *testing.T) {
	e := New()
	result := e.Extract("")
	assert.Contains(t, strings.ToLower(result.Error), "invalid path")
	assert.Equal(t, "unknown", result.DocumentFormat)
}

func TestExtractTextMessosPopulatesSummaryAndAllocation(t *testing.T) {
	text := `MESSOS ENTERPRISES
Client Number // 500136
Portfolio valuation as of 31.12.2023
Valuation currency // USD
ISIN: US0378331005 Apple Inc. 100 shares $150.00 $15,000.00
Total assets 15'000.00
Liquidity  1'500.00  10.00%
Equities  13'500.00  90.00%`

	e := New()
	result := e.ExtractText(text, nil)

	require.Empty(t, result.Error)
	require.NotNil(t, result.Summary)
	assert.Equal(t, "500136", result.Summary.ClientNumber)
	assert.Equal(t, "USD", result.Summary.ValuationCurrency)
	require.NotNil(t, result.AssetAllocation)
	assert.Contains(t, result.AssetAllocation, "equities")
}
