// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row followed by one line per record. Text cells that a
// spreadsheet would read as a formula are prefixed with a quote.
func (c *CSVFormatter) Format(rows []map[string]any) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(rows) > 0 {
		cols := columns(rows)
		if err := csvWriter.Write(cols); err != nil {
			return err
		}
		for _, row := range rows {
			record := make([]string, len(cols))
			for i, col := range cols {
				record[i] = sanitize(formatValue(row[col]))
			}
			if err := csvWriter.Write(record); err != nil {
				return err
			}
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// sanitize prefixes cells a spreadsheet would evaluate. Numbers such as -5 are left
// alone.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(s, "'", "''")
	}
	return s
}
