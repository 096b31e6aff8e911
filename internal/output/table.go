// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter outputs rows as an aligned text table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders rows with the sorted union of their keys as header. Nothing is
// written for zero rows.
func (t *TableFormatter) Format(rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}
	cols := columns(rows)

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(cols)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, col := range cols {
			cells[i] = formatValue(row[col])
		}
		table.Append(cells)
	}
	table.Render()
	return nil
}
