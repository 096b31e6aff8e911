// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrixdax/FMProKit2/internal/errs"
)

func TestNames(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		input   string
		wantErr error
	}{
		{"table ok", Table, "Person", nil},
		{"table empty", Table, "", errs.ErrTableNameMissing},
		{"table whitespace", Table, " \t\n", errs.ErrTableNameMissing},
		{"field ok", Field, "firstName", nil},
		{"field empty", Field, "", errs.ErrFieldNameMissing},
		{"field whitespace", Field, "   ", errs.ErrFieldNameMissing},
		{"query ok", Query, "Person?$top=1", nil},
		{"query empty", Query, "", errs.ErrQueryMissing},
		{"query whitespace", Query, "  ", errs.ErrQueryMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"idx_1", nil},
		{"  idx1  ", nil},
		{"Índice2", nil},
		{"idx 1", errs.ErrInvalidIndex},
		{"idx-1", errs.ErrInvalidIndex},
		{"", errs.ErrIndexMissing},
		{"   ", errs.ErrIndexMissing},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := Index(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Emptiness and bad characters must stay distinguishable.
	assert.NotErrorIs(t, Index(""), errs.ErrInvalidIndex)
	assert.NotErrorIs(t, Index("idx 1"), errs.ErrIndexMissing)
}

func TestNumber(t *testing.T) {
	assert.NoError(t, Number(0))
	assert.NoError(t, Number(10))

	err := Number(-1)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.ErrorIs(t, err, errs.ErrNegativeNumber)
}

func TestTablesAndFields(t *testing.T) {
	assert.NoError(t, Tables([]string{"A", "B"}))
	assert.ErrorIs(t, Tables(nil), errs.ErrTableNameMissing)
	assert.ErrorIs(t, Tables([]string{"A", " "}), errs.ErrTableNameMissing)

	assert.NoError(t, Fields([]string{"id", "name"}))
	assert.ErrorIs(t, Fields([]string{"id", ""}), errs.ErrFieldNameMissing)
}
