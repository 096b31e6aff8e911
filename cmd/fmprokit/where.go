// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adrixdax/FMProKit2/pkg/fmodata"
)

var operators = map[string]fmodata.FilterOperator{
	"eq": fmodata.Equal,
	"ne": fmodata.NotEqual,
	"gt": fmodata.GreaterThan,
	"lt": fmodata.LessThan,
	"ge": fmodata.GreaterOrEqual,
	"le": fmodata.LessOrEqual,
}

// parseWhere reads "field op value". A quoted value is always text; otherwise
// integers, floats and booleans are recognised.
func parseWhere(expr string) (fmodata.Filter, error) {
	parts := strings.SplitN(strings.TrimSpace(expr), " ", 3)
	if len(parts) != 3 {
		return fmodata.Filter{}, fmt.Errorf("invalid filter %q: want \"field op value\"", expr)
	}
	op, ok := operators[strings.ToLower(parts[1])]
	if !ok {
		return fmodata.Filter{}, fmt.Errorf("invalid filter %q: unknown operator %q", expr, parts[1])
	}
	return fmodata.Filter{Field: parts[0], Op: op, Value: parseLiteral(strings.TrimSpace(parts[2]))}, nil
}

func parseLiteral(s string) any {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
