// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package detector

import (
	"testing"

	"github.com/ledgerleaf/secextract/data"
	"github.com/stretchr/testify/assert"
)

func TestDetectMessos(t *testing.T) {
	r := Detect("MESSOS ENTERPRISES - Portfolio Valuation as of 2024-03-31", nil)
	assert.Equal(t, data.Messos, r.Format)
	assert.Equal(t, 0.9, r.Confidence)
}

func TestDetectUBS(t *testing.T) {
	r := Detect("UBS Switzerland AG - Client statement", nil)
	assert.Equal(t, data.UBS, r.Format)
}

func TestDetectFallsBackToGeneric(t *testing.T) {
	r := Detect("Some unrelated statement text with no bank names", nil)
	assert.Equal(t, data.Generic, r.Format)
	assert.Equal(t, 0.3, r.Confidence)
}

func TestDetectHintOverrides(t *testing.T) {
	hint := data.Schwab
	r := Detect("this text mentions ubs", &hint)
	assert.Equal(t, data.Schwab, r.Format)
	assert.Equal(t, 1.0, r.Confidence)
}

func TestDetectUnknownHintFallsThroughToScan(t *testing.T) {
	hint := data.FormatTag("not_a_real_format")
	r := Detect("UBS statement", &hint)
	assert.Equal(t, data.UBS, r.Format)
}
