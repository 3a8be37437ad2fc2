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

// Package detector scans the text of a document's first few pages against
// registry.Registry's ordered detection patterns and returns the first
// format whose pattern matches, or Generic when nothing does.
package detector

import (
	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/registry"
)

// Result is the outcome of a detection pass.
type Result struct {
	Format     data.FormatTag
	Confidence float64
}

// ScanPages is the number of leading pages' text format detection considers.
const ScanPages = 3

// highConfidence is reported when a registry pattern matches explicitly.
const highConfidence = 0.9

// fallbackConfidence is reported when nothing matches and Generic is used.
const fallbackConfidence = 0.3

// Detect scans text (expected to be the joined text of a document's first
// ScanPages pages, e.g. via tableadapter.JoinText) against registry.Registry
// in declaration order and returns the first match. If hint is non-nil and
// names a known format, it is trusted outright, skipping pattern scanning.
func Detect(text string, hint *data.FormatTag) Result {
	if hint != nil {
		if _, ok := registry.ByTag[*hint]; ok {
			return Result{Format: *hint, Confidence: 1.0}
		}
	}

	for _, d := range registry.Registry {
		for _, pat := range d.DetectPatterns {
			if pat.MatchString(text) {
				return Result{Format: d.Tag, Confidence: highConfidence}
			}
		}
	}

	return Result{Format: data.Generic, Confidence: fallbackConfidence}
}
