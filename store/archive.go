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
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	backblaze "github.com/kothar/go-backblaze"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ArchiveSink copies source PDFs to cold storage after a successful
// extraction, adapted from penny-vault/pvdata's backblaze package — same
// client, credential wiring, and upload shape, repointed at archiving
// source statements instead of dataset snapshots.
type ArchiveSink struct {
	Bucket string
	Prefix string
}

// NewArchiveSink builds a sink targeting bucket, storing objects under
// prefix/<basename>.
func NewArchiveSink(bucket, prefix string) *ArchiveSink {
	return &ArchiveSink{Bucket: bucket, Prefix: prefix}
}

// Archive uploads path to cold storage. Failures are logged and returned,
// never panicked. The engine does not call Archive; nothing in this module
// wires it into a run.
func (a *ArchiveSink) Archive(path string) error {
	b2, err := backblaze.NewB2(backblaze.Credentials{
		KeyID:          viper.GetString("backblaze.application_id"),
		ApplicationKey: viper.GetString("backblaze.application_key"),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", a.Bucket).Msg("authorize backblaze failed")
		return err
	}

	bucket, err := b2.Bucket(a.Bucket)
	if err != nil {
		log.Error().Err(err).Str("bucket", a.Bucket).Msg("lookup bucket failed")
		return err
	}
	if bucket == nil {
		log.Error().Str("bucket", a.Bucket).Msg("bucket does not exist")
		return errors.New("archive bucket not found")
	}

	reader, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source file for archive: %w", err)
	}
	defer reader.Close()

	outName := fmt.Sprintf("%s/%s", a.Prefix, filepath.Base(path))
	file, err := bucket.UploadFile(outName, map[string]string{}, reader)
	if err != nil {
		log.Error().Err(err).Str("file_name", outName).Str("bucket", a.Bucket).Msg("archive upload failed")
		return err
	}

	log.Info().Str("file_name", file.Name).Int64("size", file.ContentLength).Str("id", file.ID).Msg("archived source document")
	return nil
}
