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

// Package engine wires the table adapter, format detector, currency
// resolver, format-dispatched extractors, and post-processing pipeline into
// two entry points, Extract and ExtractText. It is the sole place a
// per-component failure is caught and converted into ExtractionResult
// warnings/errors rather than allowed to abort the batch.
package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerleaf/secextract/currency"
	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/detector"
	"github.com/ledgerleaf/secextract/extractors"
	"github.com/ledgerleaf/secextract/postprocess"
	"github.com/ledgerleaf/secextract/reference"
	"github.com/ledgerleaf/secextract/registry"
	"github.com/ledgerleaf/secextract/tableadapter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AuditSink receives a record of a completed run. The engine calls it as a
// best-effort side effect: a failure here never changes the returned
// ExtractionResult.
type AuditSink interface {
	RecordRun(result *data.ExtractionResult) error
}

// Pinger fires a liveness signal after a batch completes, or a failure
// signal when the run produced a top-level error.
type Pinger interface {
	Ping()
	PingFail()
}

// Engine holds the engine's configured dependencies. The zero value is
// usable: TableSource defaults to tableadapter.NewPDFTableSource(), and
// Reference/Sink/Pinger of nil are treated as no-ops.
type Engine struct {
	TableSource tableadapter.TableSource
	Reference   *reference.DB
	Sink        AuditSink
	Pinger      Pinger
}

// New constructs an Engine with the default PDF-backed table source and an
// empty (seed-only) reference database.
func New() *Engine {
	return &Engine{
		TableSource: tableadapter.NewPDFTableSource(),
		Reference:   reference.New(),
	}
}

// LoadReference merges path's contents into the engine's reference
// database.
func (e *Engine) LoadReference(path string) error {
	if e.Reference == nil {
		e.Reference = reference.New()
	}
	return e.Reference.LoadFile(path)
}

// Extract runs the full pipeline against a PDF file on disk.
func (e *Engine) Extract(pdfPath string) *data.ExtractionResult {
	start := time.Now()
	runID := uuid.New()
	logger := log.With().Str("run_id", runID.String()).Str("pdf_path", pdfPath).Logger()

	if pdfPath == "" {
		logger.Warn().Msg("empty pdf path")
		result := data.NewErrorResult("invalid path")
		result.RunID = runID
		result.ElapsedMS = time.Since(start).Milliseconds()
		e.finish(result)
		return result
	}
	if _, err := os.Stat(pdfPath); err != nil {
		logger.Warn().Err(err).Msg("pdf file not found")
		result := data.NewErrorResult("PDF file not found: " + pdfPath)
		result.RunID = runID
		result.ElapsedMS = time.Since(start).Milliseconds()
		e.finish(result)
		return result
	}

	src := e.TableSource
	if src == nil {
		src = tableadapter.NewPDFTableSource()
	}

	tables, warning := tableadapter.LoadTablesSafe(src, pdfPath, 0, 0)
	if warning != "" {
		logger.Warn().Str("warning", warning).Msg("table adapter failure")
		result := data.NewErrorResult(warning)
		result.RunID = runID
		result.ElapsedMS = time.Since(start).Milliseconds()
		e.finish(result)
		return result
	}

	result := e.process(tables, nil, &logger)
	result.RunID = runID
	result.ElapsedMS = time.Since(start).Milliseconds()
	e.finish(result)
	return result
}

// ExtractText runs the pipeline against raw text a caller has already
// obtained by some other means, optionally pinned to a known format.
func (e *Engine) ExtractText(text string, formatHint *data.FormatTag) *data.ExtractionResult {
	start := time.Now()
	runID := uuid.New()
	logger := log.With().Str("run_id", runID.String()).Logger()

	tables := tableadapter.BuildTableFromText(text)
	result := e.process(tables, formatHint, &logger)
	result.RunID = runID
	result.ElapsedMS = time.Since(start).Milliseconds()
	e.finish(result)
	return result
}

func (e *Engine) finish(result *data.ExtractionResult) {
	if e.Sink != nil {
		if err := e.Sink.RecordRun(result); err != nil {
			log.Warn().Err(err).Msg("audit sink failed to record run")
		}
	}
	if e.Pinger != nil {
		if result.Error != "" {
			e.Pinger.PingFail()
		} else {
			e.Pinger.Ping()
		}
	}
}

func (e *Engine) process(tables []data.Table, formatHint *data.FormatTag, logger *zerolog.Logger) *data.ExtractionResult {
	scanText := tableadapter.JoinText(tables, detector.ScanPages)

	det := detector.Detect(scanText, formatHint)
	desc, ok := registry.ByTag[det.Format]
	if !ok {
		desc = registry.ByTag[data.Generic]
	}

	docCurrency := currency.Resolve(scanText, desc.DefaultCurrency)

	var records []*data.SecurityRecord
	var summary *data.PortfolioSummary
	var allocation data.AssetAllocation
	var warnings []string
	var extractErr string
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Interface("panic", r).Msg("securities extraction failed")
				extractErr = fmt.Sprintf("securities extraction failed: %v", r)
				records = nil
			}
		}()
		switch desc.Family {
		case data.BlockStyle:
			records = extractors.ExtractBlockStyle(tables)
			summary, allocation, warnings = extractSummaryBlock(tables, logger)
		default:
			records = extractors.ExtractTabularStyle(tables, desc)
		}
	}()

	records, procWarnings := postprocess.Run(records, e.Reference, docCurrency)
	warnings = append(warnings, procWarnings...)
	if records == nil {
		records = []*data.SecurityRecord{}
	}

	logger.Info().Str("format", string(det.Format)).Int("securities", len(records)).Msg("extraction complete")

	return &data.ExtractionResult{
		DocumentFormat:  string(det.Format),
		Currency:        docCurrency,
		Summary:         summary,
		AssetAllocation: allocation,
		Securities:      records,
		Warnings:        warnings,
		Error:           extractErr,
	}
}

// extractSummaryBlock attempts the portfolio summary and asset-allocation
// side extractions for a block-style document. Each is isolated behind its
// own recover: a panic in one never prevents the other, or the securities
// extraction already computed by the caller, from being returned. Each
// recovered failure is named in the returned warnings.
func extractSummaryBlock(tables []data.Table, logger *zerolog.Logger) (summary *data.PortfolioSummary, allocation data.AssetAllocation, warnings []string) {
	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn().Interface("panic", r).Msg("portfolio summary extraction failed")
				warnings = append(warnings, "portfolio summary extraction failed")
			}
		}()
		summary = extractors.ExtractSummary(tables)
	}()

	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn().Interface("panic", r).Msg("asset allocation extraction failed")
				warnings = append(warnings, "asset allocation extraction failed")
			}
		}()
		allocation = extractors.ExtractAssetAllocation(tables)
	}()

	return summary, allocation, warnings
}
