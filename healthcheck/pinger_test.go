// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package healthcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilAndEmptyPingerIsNoop(t *testing.T) {
	var p *Pinger
	assert.NotPanics(t, func() { p.Ping() })

	p = NewPinger("")
	assert.NotPanics(t, func() { p.Ping() })
}
