// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package extractors

import (
	"testing"

	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTabularStyleWithHeader(t *testing.T) {
	tables := []data.Table{
		{
			Page: 2,
			Cells: [][]string{
				{"ISIN", "Description", "Quantity", "Price", "Value", "Currency"},
				{"US0378331005", "Apple Inc.", "100", "150.00", "15000.00", "USD"},
				{"US5949181045", "Microsoft Corporation", "50", "300.00", "15000.00", "USD"},
			},
		},
	}

	desc := registry.ByTag[data.BofA]
	records := ExtractTabularStyle(tables, desc)
	require.Len(t, records, 2)

	assert.Equal(t, "US0378331005", records[0].ISIN)
	assert.Equal(t, "Apple Inc.", records[0].Description)
	require.NotNil(t, records[0].Quantity)
	assert.Equal(t, float64(100), *records[0].Quantity)
	require.NotNil(t, records[0].Value)
	assert.Equal(t, float64(15000), *records[0].Value)
}

func TestExtractTabularStyleRelaxedFallback(t *testing.T) {
	tables := []data.Table{
		{
			Page: 3,
			Cells: [][]string{
				{"Holdings as of March 2024"},
				{"US0378331005", "Apple Inc. long description cell", "100"},
			},
		},
	}

	desc := registry.ByTag[data.Generic]
	records := ExtractTabularStyle(tables, desc)
	require.Len(t, records, 1)
	assert.Equal(t, "US0378331005", records[0].ISIN)
}
