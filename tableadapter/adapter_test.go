// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package tableadapter

import (
	"testing"

	"github.com/ledgerleaf/secextract/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextToGridSplitsOnWideWhitespace(t *testing.T) {
	grid := textToGrid("ISIN          Description   Value\nUS0378331005  Apple Inc.    15000\n\n")
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"ISIN", "Description", "Value"}, grid[0])
	assert.Equal(t, []string{"US0378331005", "Apple Inc.", "15000"}, grid[1])
}

func TestBuildTableFromText(t *testing.T) {
	tables := BuildTableFromText("a   b\nc   d")
	require.Len(t, tables, 1)
	assert.Equal(t, 1, tables[0].Page)
	assert.Equal(t, 2, tables[0].NumRows())
}

func TestJoinTextRespectsMaxPages(t *testing.T) {
	tables := []data.Table{
		{Page: 1, Cells: [][]string{{"one"}}},
		{Page: 2, Cells: [][]string{{"two"}}},
		{Page: 3, Cells: [][]string{{"three"}}},
	}
	joined := JoinText(tables, 2)
	assert.Contains(t, joined, "one")
	assert.Contains(t, joined, "two")
	assert.NotContains(t, joined, "three")
}

func TestLoadTablesSafeConvertsErrorToWarning(t *testing.T) {
	tables, warning := LoadTablesSafe(NewPDFTableSource(), "/nonexistent/does-not-exist.pdf", 0, 0)
	assert.Empty(t, tables)
	assert.Contains(t, warning, "adapter_failure")
}
