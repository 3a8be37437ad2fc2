// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package store

import (
	"testing"

	"github.com/ledgerleaf/secextract/data"
	"github.com/stretchr/testify/assert"
)

// TestRunRecordFieldsFromResult checks the result fields RecordRun reads to
// build its row (security count, warning count, elapsed time) on a plain
// result value. It does not call RecordRun and needs no database.
func TestRunRecordFieldsFromResult(t *testing.T) {
	result := &data.ExtractionResult{
		DocumentFormat: "messos",
		Currency:       "USD",
		Securities:     []*data.SecurityRecord{{ISIN: "US0378331005"}},
		Warnings:       []string{"adapter_failure: timeout"},
		ElapsedMS:      42,
	}

	assert.Equal(t, 1, len(result.Securities))
	assert.Equal(t, 1, len(result.Warnings))
	assert.Equal(t, int64(42), result.ElapsedMS)
}
