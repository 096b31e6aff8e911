// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package debug keeps credentials out of log output.
package debug

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adrixdax/FMProKit2/internal/constants"
)

// SensitiveKeys contains keys that trigger masking when they appear in a header or
// query parameter name.
var SensitiveKeys = []string{
	"password", "passwd", "pwd", "secret",
	"token", "authorization", "auth", "credential",
	"cookie",
}

// MaskPassword hides a password entirely.
func MaskPassword(password string) string {
	if password == "" {
		return ""
	}
	return "***"
}

// MaskToken keeps the last 8 characters of a token; shorter tokens are hidden entirely.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return "****" + token[len(token)-8:]
}

// MaskURL hides the userinfo password, sensitive query values and the session token
// carried in the path of a Data API logout.
func MaskURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if parsed.User != nil {
		if _, ok := parsed.User.Password(); ok {
			parsed.User = url.UserPassword(parsed.User.Username(), "***")
		}
	}

	segments := strings.Split(parsed.Path, "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == constants.SessionsSegment && segments[i+1] != "" {
			segments[i+1] = MaskToken(segments[i+1])
			parsed.Path = strings.Join(segments, "/")
			parsed.RawPath = ""
		}
	}

	query := parsed.Query()
	modified := false
	for key := range query {
		if IsSensitiveKey(key) {
			query.Set(key, "***")
			modified = true
		}
	}
	if modified {
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// MaskHeader masks a header value. Authorization keeps its scheme (Basic, Bearer).
// Basic credentials are hidden entirely since any part of base64(user:pass) decodes
// to part of the password.
func MaskHeader(name, value string) string {
	if value == "" {
		return ""
	}
	if strings.EqualFold(name, constants.Authorization) {
		if scheme, credential, ok := strings.Cut(value, " "); ok {
			if strings.EqualFold(scheme, "Basic") {
				return scheme + " ***"
			}
			return scheme + " " + MaskToken(credential)
		}
		return MaskToken(value)
	}
	if IsSensitiveKey(name) {
		return MaskToken(value)
	}
	return value
}

// IsSensitiveKey reports whether a key name looks like it carries a secret.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, sensitive := range SensitiveKeys {
		if strings.Contains(keyLower, sensitive) {
			return true
		}
	}
	return false
}

// Headers renders masked headers as a zerolog dictionary, keys sorted.
func Headers(h http.Header) *zerolog.Event {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	dict := zerolog.Dict()
	for _, name := range names {
		dict.Str(name, MaskHeader(name, strings.Join(h[name], ", ")))
	}
	return dict
}
