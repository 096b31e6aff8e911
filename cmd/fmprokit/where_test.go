// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrixdax/FMProKit2/pkg/fmodata"
)

func TestParseWhere(t *testing.T) {
	tests := []struct {
		expr string
		want fmodata.Filter
	}{
		{"status eq 2", fmodata.Filter{Field: "status", Op: fmodata.Equal, Value: int64(2)}},
		{"price GE 9.5", fmodata.Filter{Field: "price", Op: fmodata.GreaterOrEqual, Value: 9.5}},
		{"active ne true", fmodata.Filter{Field: "active", Op: fmodata.NotEqual, Value: true}},
		{"city eq Rome", fmodata.Filter{Field: "city", Op: fmodata.Equal, Value: "Rome"}},
		{"zip eq '00100'", fmodata.Filter{Field: "zip", Op: fmodata.Equal, Value: "00100"}},
		{"name eq 'New York'", fmodata.Filter{Field: "name", Op: fmodata.Equal, Value: "New York"}},
		{"surname eq 'O''Brien'", fmodata.Filter{Field: "surname", Op: fmodata.Equal, Value: "O'Brien"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := parseWhere(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWhere_Invalid(t *testing.T) {
	_, err := parseWhere("status")
	assert.ErrorContains(t, err, "want \"field op value\"")

	_, err = parseWhere("status like 2")
	assert.ErrorContains(t, err, "unknown operator")
}
