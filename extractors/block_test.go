// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package extractors

import (
	"testing"

	"github.com/ledgerleaf/secextract/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBlockStyleBasic(t *testing.T) {
	tables := []data.Table{
		{
			Page: 6,
			Cells: [][]string{
				{"ISIN: US0378331005 Apple Inc. 100 shares $150.00 $15,000.00"},
				{"Maturity: 01.01.2030 Coupon: 3.5%"},
				{"ISIN: US5949181045 Microsoft Corporation 50 shares $300.00 $15,000.00"},
			},
		},
	}

	records := ExtractBlockStyle(tables)
	require.Len(t, records, 2)

	assert.Equal(t, "US0378331005", records[0].ISIN)
	require.NotNil(t, records[0].Quantity)
	assert.Equal(t, float64(100), *records[0].Quantity)
	assert.Equal(t, "01.01.2030", records[0].MaturityDate)
	require.NotNil(t, records[0].CouponRate)
	assert.Equal(t, 3.5, *records[0].CouponRate)

	assert.Equal(t, "US5949181045", records[1].ISIN)
}

func TestExtractBlockStyleNoISINYieldsNoRecords(t *testing.T) {
	tables := []data.Table{{Page: 1, Cells: [][]string{{"just some narrative text"}}}}
	assert.Empty(t, ExtractBlockStyle(tables))
}
