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
package cmd

import (
	"github.com/ledgerleaf/secextract/reference"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// referenceCmd is the parent command for reference-database maintenance.
var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Manage the security reference database",
}

var referenceLoadPath string

// referenceLoadCmd validates a reference file without persisting it
// anywhere — the engine always loads the bundled seed plus whatever --ref-db
// extract is given, so this subcommand exists to let an operator check a
// candidate file parses cleanly before wiring it into a run.
var referenceLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Validate a reference data file (JSON or CSV)",
	Run: func(cmd *cobra.Command, args []string) {
		db := reference.New()
		if err := db.LoadFile(referenceLoadPath); err != nil {
			log.Fatal().Err(err).Str("path", referenceLoadPath).Msg("failed to load reference file")
		}
		log.Info().Str("path", referenceLoadPath).Msg("reference file loaded successfully")
	},
}

func init() {
	rootCmd.AddCommand(referenceCmd)
	referenceCmd.AddCommand(referenceLoadCmd)
	referenceLoadCmd.Flags().StringVar(&referenceLoadPath, "ref-db", "", "path to the JSON or CSV reference file to validate")
	if err := referenceLoadCmd.MarkFlagRequired("ref-db"); err != nil {
		log.Panic().Err(err).Msg("MarkFlagRequired for ref-db failed")
	}
}
