// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package odata

import (
	"fmt"
	"net/url"
	"strings"
)

// SplitEndpoint splits an endpoint at the first `?` that is not inside a quoted literal.
func SplitEndpoint(endpoint string) (path, query string) {
	if i := indexOutsideQuotes(endpoint, '?'); i >= 0 {
		return endpoint[:i], endpoint[i+1:]
	}
	return endpoint, ""
}

// EscapePath percent-encodes what cannot appear literally in a path, keeping the
// OData punctuation ($ ' ( ) , = *) readable.
func EscapePath(path string) string {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		c := path[i]
		if isPathSafe(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isPathSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.~!$&'()*+,;=:@/", c) >= 0
}

// EscapeQuery encodes the query string for the wire. Clauses are split on `&` outside
// quoted literals, each value is query-escaped with spaces as %20 rather than `+`,
// and `$` and `,` are left literal since some servers do not decode them.
func EscapeQuery(query string) string {
	if query == "" {
		return ""
	}
	parts := splitOutsideQuotes(query, '&')
	for i, part := range parts {
		key, value, hasValue := strings.Cut(part, "=")
		if !hasValue {
			parts[i] = escapeComponent(part)
			continue
		}
		parts[i] = escapeComponent(key) + "=" + escapeComponent(value)
	}
	return strings.Join(parts, "&")
}

func escapeComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	escaped = strings.ReplaceAll(escaped, "%24", "$")
	return strings.ReplaceAll(escaped, "%2C", ",")
}

func indexOutsideQuotes(s string, sep byte) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			quoted = !quoted
		case sep:
			if !quoted {
				return i
			}
		}
	}
	return -1
}

func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	for {
		i := indexOutsideQuotes(s, sep)
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i+1:]
	}
}
