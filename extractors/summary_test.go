// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package extractors

import (
	"testing"

	"github.com/ledgerleaf/secextract/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSummaryFindsEachField(t *testing.T) {
	tables := []data.Table{
		{
			Page: 3,
			Cells: [][]string{
				{"Client Number // 123456"},
				{"Valuation currency // USD"},
				{"Portfolio valuation as of 31.12.2023"},
				{"Total assets 1'234'567.89"},
				{"Performance YTD 3.25%"},
			},
		},
	}

	summary := ExtractSummary(tables)
	require.NotNil(t, summary)
	assert.Equal(t, "123456", summary.ClientNumber)
	assert.Equal(t, "USD", summary.ValuationCurrency)
	assert.Equal(t, "31.12.2023", summary.ValuationDate)
	assert.Equal(t, "1'234'567.89", summary.TotalValue)
	assert.InDelta(t, 1234567.89, summary.TotalValueFloat, 0.01)
	require.NotNil(t, summary.PerformancePercent)
	assert.Equal(t, 3.25, *summary.PerformancePercent)
}

func TestExtractSummaryNoMatchReturnsNil(t *testing.T) {
	tables := []data.Table{{Page: 1, Cells: [][]string{{"just some narrative text"}}}}
	assert.Nil(t, ExtractSummary(tables))
}

func TestExtractAssetAllocationCategories(t *testing.T) {
	tables := []data.Table{
		{
			Page: 3,
			Cells: [][]string{
				{"Liquidity", "50'000", "5.00%"},
				{"Bonds", "300'000", "30.00%"},
				{"Equities", "400'000", "40.00%"},
				{"Structured products", "150'000", "15.00%"},
				{"Other assets", "100'000", "10.00%"},
			},
		},
	}

	allocation := ExtractAssetAllocation(tables)
	require.NotNil(t, allocation)
	require.Contains(t, allocation, "bonds")
	assert.Equal(t, "300'000", allocation["bonds"].Value)
	assert.Equal(t, 30.0, allocation["bonds"].Percentage)
	require.Contains(t, allocation, "equities")
	assert.Equal(t, 40.0, allocation["equities"].Percentage)
}

func TestExtractAssetAllocationExcludesBondFundRow(t *testing.T) {
	tables := []data.Table{
		{
			Page: 3,
			Cells: [][]string{
				{"Bonds and bond funds total assets", "900'000", "90.00%"},
			},
		},
	}

	allocation := ExtractAssetAllocation(tables)
	assert.Nil(t, allocation)
}

func TestExtractAssetAllocationNoMatchReturnsNil(t *testing.T) {
	tables := []data.Table{{Page: 1, Cells: [][]string{{"just some narrative text"}}}}
	assert.Nil(t, ExtractAssetAllocation(tables))
}
