// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package output renders OData records for the terminal.
//
// Supported formats:
//   - json: JSON Lines, one record per line
//   - csv: header row of the sorted union of columns, then one line per record
//   - table: an aligned text table
package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Formatter writes records in one output format.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []map[string]any) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter for format ("json", "csv" or "table").
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// columns returns the union of keys across rows, sorted, with OData annotations
// such as @odata.etag dropped.
func columns(rows []map[string]any) []string {
	set := make(map[string]struct{})
	for _, row := range rows {
		for col := range row {
			if strings.HasPrefix(col, "@") {
				continue
			}
			set[col] = struct{}{}
		}
	}
	cols := make([]string, 0, len(set))
	for col := range set {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// formatValue converts a decoded JSON value to a cell.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
