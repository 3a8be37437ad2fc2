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

// Package healthcheck is a dead-man's-switch ping fired after a batch run
// completes, adapted from penny-vault/pvdata's healthchecks.io client: the
// same resty-based HTTP call, stripped down from full check CRUD (create,
// pause, resume, delete — no longer applicable once there is no scheduled
// daemon mode to manage) to the one call an extraction batch needs: "I'm
// alive, I finished."
package healthcheck

import (
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Pinger fires a GET against a configured healthchecks.io-style ping URL
// after a batch completes. A nil Pinger, or one with an empty URL, is a
// silent no-op: this hook is entirely optional.
type Pinger struct {
	URL    string
	client *resty.Client
}

// NewPinger builds a Pinger targeting url.
func NewPinger(url string) *Pinger {
	return &Pinger{URL: url, client: resty.New()}
}

// Ping fires the configured URL, logging (never raising) on failure. It
// implements engine.Pinger.
func (p *Pinger) Ping() {
	if p == nil || p.URL == "" {
		return
	}
	if _, err := p.client.R().Get(p.URL); err != nil {
		log.Warn().Err(err).Str("url", p.URL).Msg("healthcheck ping failed")
	}
}

// PingFail fires the /fail variant of the configured URL, used when a batch
// run should be flagged as unhealthy (e.g. engine.Extract returned Error).
func (p *Pinger) PingFail() {
	if p == nil || p.URL == "" {
		return
	}
	if _, err := p.client.R().Get(p.URL + "/fail"); err != nil {
		log.Warn().Err(err).Str("url", p.URL).Msg("healthcheck fail-ping failed")
	}
}
