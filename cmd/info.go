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
	"fmt"

	"github.com/ledgerleaf/secextract/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xeonx/timeago"
)

var infoLimit int

// infoCmd represents the info command: a summary of recent extraction runs
// recorded in the optional audit store.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display recently recorded extraction runs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		dbURL := viper.GetString("store.db_url")
		if dbURL == "" {
			log.Fatal().Msg("store.db_url is not configured; no audit history to show")
		}

		s, err := store.Connect(ctx, dbURL)
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to audit store")
		}
		defer s.Close()

		runs, err := s.RecentRuns(ctx, infoLimit)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load recent runs")
		}

		for _, r := range runs {
			status := "ok"
			if r.Error != "" {
				status = "error: " + r.Error
			}
			fmt.Printf("%-12s %-8s %3d securities  %s  %s\n",
				r.DocumentFormat, r.Currency, r.SecurityCount,
				timeago.English.Format(r.RecordedAt), status)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().IntVar(&infoLimit, "limit", 20, "number of recent runs to display")
}
