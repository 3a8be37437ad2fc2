// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234.56", 1234.56, true},
		{"1'234.56", 1234.56, true},
		{"1.234,56", 1234.56, true},
		{"150.00", 150.0, true},
		{"15000", 15000, true},
		{"$150.00", 150.0, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		if ok {
			assert.InDelta(t, c.want, got, 0.001, c.in)
		}
	}
}

func TestISINPattern(t *testing.T) {
	assert.True(t, ISIN.MatchString("US0378331005"))
	assert.False(t, ISIN.MatchString("US12345678901"))
}

func TestParseQuantity(t *testing.T) {
	v, ok := ParseQuantity("100 shares")
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)

	v, ok = ParseQuantity("quantity: 250")
	assert.True(t, ok)
	assert.Equal(t, 250.0, v)
}
