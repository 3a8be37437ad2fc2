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
package reference

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ledgerleaf/secextract/data"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const openFigiMappingURL = "https://api.openfigi.com/v3/mapping"

// OpenFIGIEnricher is an optional, rate-limited symbology lookup adapted
// from penny-vault/pvdata's figi package. It is a supplement to DB, never a
// replacement: DB.LookupByISIN/LookupByName and the post-processing
// pipeline never call it; it is consulted only when a caller invokes
// LookupTicker directly, and only when an API key is configured.
// Disabled (APIKey == "") it behaves exactly like a
// local-only miss, honoring the "never real-time market-price lookup"
// non-goal — this resolves symbology, not prices.
type OpenFIGIEnricher struct {
	APIKey  string
	client  *resty.Client
	limiter *rate.Limiter
}

// NewOpenFIGIEnricher builds an enricher. A limiter of 10 req / 6s matches
// OpenFIGI's documented anonymous rate limit.
func NewOpenFIGIEnricher(apiKey string) *OpenFIGIEnricher {
	return &OpenFIGIEnricher{
		APIKey:  apiKey,
		client:  resty.New(),
		limiter: rate.NewLimiter(rate.Every(600*time.Millisecond), 10),
	}
}

type openFigiQuery struct {
	IDType  string `json:"idType"`
	IDValue string `json:"idValue"`
}

type openFigiAsset struct {
	CompositeFIGI string `json:"compositeFIGI"`
	Ticker        string `json:"ticker"`
	Name          string `json:"name"`
	SecurityType  string `json:"securityType"`
}

type openFigiMappingResponse struct {
	Data []openFigiAsset `json:"data"`
}

// LookupTicker resolves a ticker to a ReferenceEntry via the OpenFIGI
// mapping API. Any failure (no key configured, network error, non-2xx
// status) returns (zero, false) rather than an error, matching DB's
// "never raise" lookup behavior.
func (e *OpenFIGIEnricher) LookupTicker(ctx context.Context, ticker string) (data.ReferenceEntry, bool) {
	if e == nil || e.APIKey == "" || ticker == "" {
		return data.ReferenceEntry{}, false
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return data.ReferenceEntry{}, false
	}

	var result []openFigiMappingResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetHeader("X-OPENFIGI-APIKEY", e.APIKey).
		SetBody([]openFigiQuery{{IDType: "TICKER", IDValue: ticker}}).
		SetResult(&result).
		Post(openFigiMappingURL)

	if err != nil {
		log.Debug().Err(err).Str("ticker", ticker).Msg("openfigi lookup failed")
		return data.ReferenceEntry{}, false
	}
	if resp.StatusCode() >= 400 || len(result) == 0 || len(result[0].Data) == 0 {
		return data.ReferenceEntry{}, false
	}

	asset := result[0].Data[0]
	return data.ReferenceEntry{
		CanonicalName: asset.Name,
		Ticker:        asset.Ticker,
	}, true
}
