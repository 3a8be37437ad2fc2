// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package data

import "github.com/google/uuid"

// PortfolioSummary is the optional header block a block-style statement
// (e.g. messos) usually carries: client/account identity and a stated
// total that the post-processor cross-checks against the computed total.
type PortfolioSummary struct {
	ClientNumber      string  `json:"client_number,omitempty"`
	ValuationDate      string  `json:"valuation_date,omitempty"`
	ValuationCurrency  string  `json:"valuation_currency,omitempty"`
	TotalValue         string  `json:"total_value,omitempty"`
	TotalValueFloat     float64 `json:"total_value_float"`
	PerformancePercent *float64 `json:"performance_percent,omitempty"`
}

// AllocationCategory is a slice of the portfolio attributed to one bucket.
type AllocationCategory struct {
	Value      string  `json:"value"`
	ValueFloat float64 `json:"value_float"`
	Percentage float64 `json:"percentage"`
}

// AssetAllocation maps category tags (liquidity, bonds, equities,
// structured_products, other, ...) to their share of the portfolio.
type AssetAllocation map[string]AllocationCategory

// ExtractionResult is the sealed outcome of one extraction call. Error is
// non-empty if and only if no usable data could be produced; Securities is
// always a non-nil slice, possibly empty, so callers can treat the result
// uniformly regardless of partial failure.
type ExtractionResult struct {
	DocumentFormat string `json:"document_format"`
	Currency       string `json:"currency"`

	Summary         *PortfolioSummary `json:"summary,omitempty"`
	AssetAllocation AssetAllocation   `json:"asset_allocation,omitempty"`
	Securities      []*SecurityRecord `json:"securities"`

	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`

	RunID     uuid.UUID `json:"run_id"`
	ElapsedMS int64     `json:"elapsed_ms"`
}

// NewErrorResult builds the well-formed "total failure" shape: a non-empty
// error, document_format "unknown", and an empty (non-nil) securities
// slice.
func NewErrorResult(msg string) *ExtractionResult {
	return &ExtractionResult{
		DocumentFormat: "unknown",
		Securities:     []*SecurityRecord{},
		Error:          msg,
	}
}
