// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package postprocess

import (
	"testing"

	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestRunDerivesMissingValue(t *testing.T) {
	records := []*data.SecurityRecord{
		{ISIN: "US0378331005", Quantity: ptr(100), Price: ptr(150)},
	}
	out, _ := Run(records, nil, "USD")
	require.NotNil(t, out[0].Value)
	assert.Equal(t, 15000.0, *out[0].Value)
	assert.True(t, out[0].ValueDerived)
}

func TestRunReconcilesInconsistentValue(t *testing.T) {
	records := []*data.SecurityRecord{
		{ISIN: "US0378331005", Quantity: ptr(100), Price: ptr(150), Value: ptr(1.0)},
	}
	out, _ := Run(records, nil, "USD")
	assert.True(t, out[0].HasIssue(data.IssueValueInconsistent))
	assert.Equal(t, 15000.0, *out[0].Value)
}

func TestRunEnrichesFromReference(t *testing.T) {
	db := reference.New()
	records := []*data.SecurityRecord{{ISIN: "US0378331005"}}
	out, _ := Run(records, db, "USD")
	assert.Equal(t, "Apple Inc.", out[0].Description)
	assert.Equal(t, "reference_db", out[0].NameSource)
}

func TestRunComputesAndRenormalizesWeights(t *testing.T) {
	records := []*data.SecurityRecord{
		{ISIN: "AAAAAAAAAAA1", Value: ptr(600)},
		{ISIN: "BBBBBBBBBBB2", Value: ptr(400)},
	}
	out, _ := Run(records, nil, "USD")

	var sum float64
	for _, r := range out {
		require.NotNil(t, r.Weight)
		sum += *r.Weight
	}
	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestRunIsIdempotent(t *testing.T) {
	records := []*data.SecurityRecord{
		{ISIN: "US0378331005", Quantity: ptr(100), Price: ptr(150)},
		{ISIN: "US5949181045", Value: ptr(500)},
	}
	db := reference.New()
	first, _ := Run(records, db, "USD")
	second, _ := Run(first, db, "USD")

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Description, second[i].Description)
		assert.Equal(t, first[i].Weight, second[i].Weight)
		assert.Equal(t, first[i].ExtractionConfidence, second[i].ExtractionConfidence)
		assert.Equal(t, first[i].Issues, second[i].Issues)
	}
}

func TestFlagMissingRequired(t *testing.T) {
	records := []*data.SecurityRecord{{ISIN: "", Description: ""}}
	out, _ := Run(records, nil, "USD")
	assert.True(t, out[0].HasIssue(data.IssueMissingRequired))
}
