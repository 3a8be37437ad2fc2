// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package registry

import (
	"testing"

	"github.com/ledgerleaf/secextract/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericIsAlwaysLast(t *testing.T) {
	require.NotEmpty(t, Registry)
	last := Registry[len(Registry)-1]
	assert.Equal(t, data.Generic, last.Tag)
	assert.Empty(t, last.DetectPatterns)
}

func TestByTagCoversEveryRegistryEntry(t *testing.T) {
	require.Len(t, ByTag, len(Registry))
	for _, d := range Registry {
		found, ok := ByTag[d.Tag]
		require.True(t, ok, "missing ByTag entry for %s", d.Tag)
		assert.Same(t, d, found)
	}
}

func TestMessosIsBlockStyleWithoutTableHints(t *testing.T) {
	d, ok := ByTag[data.Messos]
	require.True(t, ok)
	assert.Equal(t, data.BlockStyle, d.Family)
	assert.NotEmpty(t, d.DetectPatterns)
	assert.Zero(t, d.TableHints)
}

func TestBrokerFormatsShareFallbackColumnOrder(t *testing.T) {
	ubs, ok := ByTag[data.UBS]
	require.True(t, ok)
	assert.Equal(t, "CHF", ubs.DefaultCurrency)
	assert.Equal(t, 0, ubs.TableHints.Identifier.FallbackCol)
	assert.Equal(t, 4, ubs.TableHints.Value.FallbackCol)
}
