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
	"context"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/ledgerleaf/secextract/data"
	"github.com/ledgerleaf/secextract/engine"
	"github.com/ledgerleaf/secextract/healthcheck"
	"github.com/ledgerleaf/secextract/store"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	extractPDFPath    string
	extractOutputPath string
	extractRefDBPath  string
	extractLogFile    string
	extractDebug      bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract security holdings from a statement PDF",
	Run: func(cmd *cobra.Command, args []string) {
		if extractDebug {
			log.Logger = log.Level(zerolog.DebugLevel)
		}

		if extractLogFile != "" {
			f, err := os.OpenFile(extractLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				log.Fatal().Err(err).Str("log_file", extractLogFile).Msg("could not open log file")
			}
			log.Logger = log.Output(f)
		}

		eng := engine.New()

		if extractRefDBPath != "" {
			if err := eng.LoadReference(extractRefDBPath); err != nil {
				log.Warn().Err(err).Str("ref_db", extractRefDBPath).Msg("failed to load reference database, continuing with bundled seed only")
			}
		}

		if dbURL := viper.GetString("store.db_url"); dbURL != "" {
			s, err := store.Connect(context.Background(), dbURL)
			if err != nil {
				log.Warn().Err(err).Msg("could not connect to audit store, continuing without it")
			} else {
				eng.Sink = s
				defer s.Close()
			}
		}

		if healthURL := viper.GetString("healthcheck.url"); healthURL != "" {
			eng.Pinger = healthcheck.NewPinger(healthURL)
		}

		result := eng.Extract(extractPDFPath)

		out, err := gojson.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("could not serialize extraction result")
		}

		if extractOutputPath == "" || extractOutputPath == "-" {
			os.Stdout.Write(out)
			os.Stdout.Write([]byte("\n"))
			if result.Error != "" {
				os.Exit(1)
			}
			return
		}

		filer := &data.FSFiler{}
		if _, err := filer.CreateFile(extractOutputPath, out); err != nil {
			log.Fatal().Err(err).Str("output", extractOutputPath).Msg("could not write extraction result")
		}

		if result.Error != "" {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVar(&extractPDFPath, "pdf", "", "path to the statement PDF to extract")
	extractCmd.Flags().StringVar(&extractOutputPath, "output", "-", "path to write the JSON result (- for stdout)")
	extractCmd.Flags().StringVar(&extractRefDBPath, "ref-db", "", "path to an additional JSON or CSV reference file to load")
	extractCmd.Flags().StringVar(&extractLogFile, "log-file", "", "write logs to this file instead of stderr")
	extractCmd.Flags().BoolVar(&extractDebug, "debug", false, "enable debug logging")
	extractCmd.Flags().String("store-db", "", "Postgres connection URL for the audit trail store")
	extractCmd.Flags().String("healthcheck-url", "", "URL to ping after the run completes")
	if err := viper.BindPFlag("store.db_url", extractCmd.Flags().Lookup("store-db")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for store-db failed")
	}
	if err := viper.BindPFlag("healthcheck.url", extractCmd.Flags().Lookup("healthcheck-url")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for healthcheck-url failed")
	}
	if err := extractCmd.MarkFlagRequired("pdf"); err != nil {
		log.Panic().Err(err).Msg("MarkFlagRequired for pdf failed")
	}
}
