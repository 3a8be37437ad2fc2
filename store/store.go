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

// Package store is the optional persistence sink for completed extraction
// runs: a pgx-backed audit trail recording each run's format, currency,
// security and warning counts, error and elapsed time. The source file path
// is not recorded. It is never required: the engine runs fully
// without a Store configured, and a Store failure never affects an
// ExtractionResult.
package store

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerleaf/secextract/data"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store records one row per completed engine run.
type Store struct {
	Pool *pgxpool.Pool
}

// Connect opens a pool against dbURL and runs pending migrations.
func Connect(ctx context.Context, dbURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect to store database: %w", err)
	}
	if err := Migrate(dbURL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run store migrations: %w", err)
	}
	return &Store{Pool: pool}, nil
}

// Migrate applies the embedded schema to dbURL.
func Migrate(dbURL string) error {
	dir, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", dir, dbURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.Pool.Close()
}

// RunRecord is the persisted shape of one extraction run.
type RunRecord struct {
	RunID          string    `db:"run_id"`
	DocumentFormat string    `db:"document_format"`
	Currency       string    `db:"currency"`
	SecurityCount  int       `db:"security_count"`
	Warnings       int       `db:"warning_count"`
	Error          string    `db:"error"`
	ElapsedMS      int64     `db:"elapsed_ms"`
	RecordedAt     time.Time `db:"recorded_at"`
}

// RecordRun inserts one audit row for result. It implements
// engine.AuditSink.
func (s *Store) RecordRun(result *data.ExtractionResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.Pool.Exec(ctx, `
		INSERT INTO extraction_runs
			(run_id, document_format, currency, security_count, warning_count, error, elapsed_ms, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		result.RunID.String(), result.DocumentFormat, result.Currency,
		len(result.Securities), len(result.Warnings), result.Error, result.ElapsedMS)
	if err != nil {
		log.Error().Err(err).Str("run_id", result.RunID.String()).Msg("failed to record extraction run")
		return err
	}
	return nil
}

// RecentRuns returns the most recently recorded runs, newest first, for the
// cmd package's info/summary display.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	var rows []RunRecord
	err := pgxscan.Select(ctx, s.Pool, &rows,
		`SELECT run_id, document_format, currency, security_count, warning_count, error, elapsed_ms, recorded_at
		 FROM extraction_runs ORDER BY recorded_at DESC LIMIT $1`, limit)
	return rows, err
}
