// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package transport sends prepared HTTP requests and hands back the response body.
package transport

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/debug"
)

// Transport is the single dispatch point used for every method.
type Transport interface {
	// Send performs req and returns the body of a 2xx response. Any other status is
	// reported as a *StatusError.
	Send(req *http.Request) ([]byte, error)
}

// Func adapts a function to Transport.
type Func func(req *http.Request) ([]byte, error)

func (f Func) Send(req *http.Request) ([]byte, error) { return f(req) }

// HTTP is the net/http implementation of Transport.
type HTTP struct {
	client *http.Client
	logger zerolog.Logger
}

// NewHTTP creates an HTTP transport. A nil client gets one with the default timeout.
func NewHTTP(client *http.Client, logger zerolog.Logger) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: constants.DefaultTimeout * time.Second}
	}
	return &HTTP{
		client: client,
		logger: logger.With().Str("component", "transport").Logger(),
	}
}

// Send implements Transport.
func (t *HTTP) Send(req *http.Request) ([]byte, error) {
	start := time.Now()
	t.logger.Debug().
		Str("method", req.Method).
		Str("url", debug.MaskURL(req.URL.String())).
		Dict("headers", debug.Headers(req.Header)).
		Msg("sending request")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	t.logger.Debug().
		Str("method", req.Method).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("received response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, NewStatusError(resp.StatusCode, body)
	}
	return body, nil
}
