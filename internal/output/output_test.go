// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []map[string]any {
	return []map[string]any{
		{"@odata.etag": "W/\"1\"", "personID": "P1", "firstName": "Ada", "age": float64(36)},
		{"personID": "P2", "firstName": "=SUM(A1)", "active": true},
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for format, want := range map[string]any{
		"json":  &JSONFormatter{},
		"":      &JSONFormatter{},
		"CSV":   &CSVFormatter{},
		"table": &TableFormatter{},
	} {
		f, err := New(format, &buf)
		require.NoError(t, err, format)
		assert.IsType(t, want, f, format)
	}

	_, err := New("xml", &buf)
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(sampleRows()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"active":true,"firstName":"=SUM(A1)","personID":"P2"}`, lines[1])
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(&buf).Format(sampleRows()))

	expected := "active,age,firstName,personID\n" +
		",36,Ada,P1\n" +
		"true,,'=SUM(A1),P2\n"
	assert.Equal(t, expected, buf.String())
}

func TestCSVFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(&buf).Format(nil))
	assert.Empty(t, buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(nil)
	f.SetOutput(&buf)
	require.NoError(t, f.Format(sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "firstName")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "=SUM(A1)")
	assert.NotContains(t, out, "odata.etag")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"-5", "-5"},
		{"+3.25", "+3.25"},
		{"-1e3", "-1e3"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"-2+3", "'-2+3"},
		{"@cmd", "'@cmd"},
		{"+it's", "'+it''s"},
		{"Ada", "Ada"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitize(tt.in), tt.in)
	}
}

func TestCSVFormatter_NegativeNumbers(t *testing.T) {
	var buf bytes.Buffer
	rows := []map[string]any{{"delta": float64(-5), "note": "-"}}
	require.NoError(t, NewCSVFormatter(&buf).Format(rows))
	assert.Equal(t, "delta,note\n-5,'-\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(nil))
	assert.Equal(t, "1000000", formatValue(float64(1e6)))
	assert.Equal(t, "2.5", formatValue(2.5))
	assert.Equal(t, "false", formatValue(false))
	assert.Equal(t, "[a b]", formatValue([]any{"a", "b"}))
}
