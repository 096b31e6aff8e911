// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package odata

import (
	"testing"
)

func TestEscapeQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "Simple filter with spaces",
			query:    "$filter=Name eq 'Test Value'",
			expected: "$filter=Name%20eq%20%27Test%20Value%27",
		},
		{
			name:     "Multiple parameters",
			query:    "$filter=status eq 2&$orderby=firstName asc&$top=5",
			expected: "$filter=status%20eq%202&$orderby=firstName%20asc&$top=5",
		},
		{
			name:     "Ampersand inside literal",
			query:    "$filter=Company eq 'A&B'&$top=1",
			expected: "$filter=Company%20eq%20%27A%26B%27&$top=1",
		},
		{
			name:     "Select keeps commas",
			query:    "$select=ID,Name",
			expected: "$select=ID,Name",
		},
		{
			name:     "Clause without key",
			query:    "x eq 1&$expand=Place($select=*)",
			expected: "x%20eq%201&$expand=Place%28$select%3D%2A%29",
		},
		{
			name:     "Empty",
			query:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EscapeQuery(tt.query)
			if result != tt.expected {
				t.Errorf("EscapeQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		endpoint  string
		wantPath  string
		wantQuery string
	}{
		{"Person", "Person", ""},
		{"Person?$top=1", "Person", "$top=1"},
		{"Person('a?b')/name", "Person('a?b')/name", ""},
		{"Person('a?b')?$select=x", "Person('a?b')", "$select=x"},
	}

	for _, tt := range tests {
		path, query := SplitEndpoint(tt.endpoint)
		if path != tt.wantPath || query != tt.wantQuery {
			t.Errorf("SplitEndpoint(%q) = (%q, %q), want (%q, %q)", tt.endpoint, path, query, tt.wantPath, tt.wantQuery)
		}
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"Person('abc')", "Person('abc')"},
		{"My Table('a?b')/$value", "My%20Table('a%3Fb')/$value"},
		{"$crossjoin(A,B)", "$crossjoin(A,B)"},
		{"Café", "Caf%C3%A9"},
	}

	for _, tt := range tests {
		if got := EscapePath(tt.path); got != tt.expected {
			t.Errorf("EscapePath(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}
