// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package client sends OData requests to FileMaker Server: it composes the URL,
// authenticates, encodes the body, dispatches through the transport and decodes the
// reply into the error taxonomy of package errs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/debug"
	"github.com/adrixdax/FMProKit2/internal/decode"
	"github.com/adrixdax/FMProKit2/internal/errs"
	"github.com/adrixdax/FMProKit2/internal/observe"
	"github.com/adrixdax/FMProKit2/internal/odata"
	"github.com/adrixdax/FMProKit2/internal/transport"
)

// Request is one call against the OData service. Endpoint is the canonical,
// unescaped string produced by package odata.
type Request struct {
	Method   string
	Endpoint string
	// Body is JSON-encoded for POST and PATCH and ignored otherwise.
	Body any
	// Accept overrides the default application/json, e.g. for $metadata and $value.
	Accept string
}

// Executor is safe for concurrent use.
type Executor struct {
	conn      Connection
	transport transport.Transport
	creds     credentialStore
	logger    zerolog.Logger
	metrics   *observe.Metrics
	userAgent string
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithMetrics records every request in m.
func WithMetrics(m *observe.Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(e *Executor) {
		e.userAgent = userAgent
	}
}

// New creates an Executor for conn that sends through tr.
func New(conn Connection, tr transport.Transport, opts ...Option) *Executor {
	e := &Executor{
		conn:      conn,
		transport: tr,
		logger:    zerolog.Nop(),
		userAgent: constants.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("database", conn.Database).Logger()
	return e
}

// Connection returns the identity the executor talks to.
func (e *Executor) Connection() Connection {
	return e.conn
}

// Execute sends req and decodes the reply as shape.
func Execute[T any](ctx context.Context, e *Executor, req Request, shape decode.Shape) (T, error) {
	var zero T
	body, err := e.Do(ctx, req)
	if err != nil {
		return zero, err
	}
	out, err := decode.Decode[T](body, shape)
	if err != nil {
		return zero, errs.E(errs.RequestFailure, req.Method+" "+req.Endpoint, err)
	}
	return out, nil
}

// Delete sends a DELETE and reports whether the server confirmed it with an empty body.
func (e *Executor) Delete(ctx context.Context, endpoint string) (bool, error) {
	body, err := e.Do(ctx, Request{Method: constants.DELETE, Endpoint: endpoint})
	if err != nil {
		return false, err
	}
	return decode.Deleted(body), nil
}

// Do sends req and returns the raw body of a successful reply.
func (e *Executor) Do(ctx context.Context, req Request) ([]byte, error) {
	op := req.Method + " " + req.Endpoint

	target, err := e.resolve(req.Endpoint)
	if err != nil {
		return nil, errs.E(errs.InvalidURL, op, err)
	}

	var payload io.Reader
	if req.Method == constants.POST || req.Method == constants.PATCH {
		data, err := encodeBody(req.Body)
		if err != nil {
			return nil, errs.Input(op, err)
		}
		payload = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, payload)
	if err != nil {
		return nil, errs.E(errs.InvalidURL, op, err)
	}
	httpReq.Header.Set(constants.UserAgent, e.userAgent)
	accept := req.Accept
	if accept == "" {
		accept = constants.ContentTypeJSON
	}
	httpReq.Header.Set(constants.Accept, accept)
	if payload != nil {
		httpReq.Header.Set(constants.ContentType, constants.ContentTypeJSON)
	}
	e.authorize(httpReq, e.creds.load())

	start := time.Now()
	body, err := e.transport.Send(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		err = errs.E(errs.RequestFailure, op, err)
	}
	e.metrics.Observe(req.Method, elapsed, err)

	logEvent := e.logger.Debug()
	if err != nil {
		logEvent = e.logger.Warn().Err(err)
	}
	logEvent.
		Str("method", req.Method).
		Str("url", debug.MaskURL(target)).
		Dur("elapsed", elapsed).
		Msg("odata request")

	if err != nil {
		return nil, err
	}
	return body, nil
}

// resolve joins the base URL and the endpoint, escaping for the wire, and insists on
// an absolute URL.
func (e *Executor) resolve(endpoint string) (string, error) {
	path, query := odata.SplitEndpoint(endpoint)
	raw := e.conn.BaseURL() + odata.EscapePath(path)
	if query != "" {
		raw += "?" + odata.EscapeQuery(query)
	}
	return absoluteURL(raw)
}

func absoluteURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q has no scheme or host", raw)
	}
	return raw, nil
}

// authorize prefers the session token and falls back to Basic credentials.
func (e *Executor) authorize(req *http.Request, creds *Credentials) {
	switch {
	case creds.hasToken():
		req.Header.Set(constants.Authorization, constants.BearerScheme+" "+creds.Token)
	case creds.hasBasic():
		req.SetBasicAuth(creds.Username, creds.Password)
	}
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrEncodeBody, err)
	}
	return data, nil
}
