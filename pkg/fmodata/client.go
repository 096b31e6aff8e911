// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package fmodata is a typed client for the FileMaker Server OData API.
//
// A Client is bound to one database. Operations that decode into a caller type are
// package functions taking the client first, because Go methods cannot have type
// parameters:
//
//	c := fmodata.New("fms.example.com", fmodata.V4, "Contacts")
//	c.SetBasicAuthCredentials("admin", "secret")
//	people, err := fmodata.GetTable[[]Person](ctx, c, fmodata.From("Person").Limit(10))
//
// Every failure is an *errs.Error; branch on it with errors.Is against the kind
// sentinels re-exported here (ErrInvalidInput, ErrRequestFailed, ...).
package fmodata

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/adrixdax/FMProKit2/internal/client"
	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/observe"
	"github.com/adrixdax/FMProKit2/internal/transport"
)

// Client holds the connection identity and credentials of one database.
type Client struct {
	exec *client.Executor
}

type options struct {
	scheme     string
	basePath   string
	httpClient *http.Client
	transport  transport.Transport
	logger     zerolog.Logger
	metrics    *observe.Metrics
	timeout    time.Duration
	userAgent  string
}

// Option configures a Client.
type Option func(*options)

// WithScheme overrides the default https scheme.
func WithScheme(scheme string) Option {
	return func(o *options) {
		o.scheme = scheme
	}
}

// WithBasePath overrides the default `fmi/odata` path prefix.
func WithBasePath(basePath string) Option {
	return func(o *options) {
		o.basePath = basePath
	}
}

// WithHTTPClient sends requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTransport replaces the HTTP transport entirely. It takes precedence over
// WithHTTPClient and WithTimeout.
func WithTransport(tr Transport) Option {
	return func(o *options) {
		o.transport = tr
	}
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records requests in m. Register m on a registry of your choice.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// New creates a client for database on host. The base URL is
// `https://host/fmi/odata/{version}/{database}/` unless options say otherwise. Nothing
// is sent until the first operation.
func New(host string, version Version, database string, opts ...Option) *Client {
	o := options{
		scheme:    constants.DefaultScheme,
		basePath:  constants.DefaultBasePath,
		logger:    zerolog.Nop(),
		timeout:   constants.DefaultTimeout * time.Second,
		userAgent: constants.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	conn := client.NewConnection(host, version, database)
	conn.Scheme = o.scheme
	conn.BasePath = o.basePath

	tr := o.transport
	if tr == nil {
		hc := o.httpClient
		if hc == nil {
			hc = &http.Client{Timeout: o.timeout}
		}
		tr = transport.NewHTTP(hc, o.logger)
	}

	return &Client{
		exec: client.New(conn, tr,
			client.WithLogger(o.logger),
			client.WithMetrics(o.metrics),
			client.WithUserAgent(o.userAgent),
		),
	}
}

// BaseURL returns `scheme://host/{basePath}/{version}/{database}/`.
func (c *Client) BaseURL() string {
	return c.exec.Connection().BaseURL()
}

// Database returns the database name.
func (c *Client) Database() string {
	return c.exec.Connection().Database
}

// SetBasicAuthCredentials replaces the credentials used for Basic authentication and
// drops any session token.
func (c *Client) SetBasicAuthCredentials(username, password string) {
	c.exec.SetCredentials(username, password)
}

// UpdateCredentials replaces the credentials and immediately fetches a session token
// for them.
func (c *Client) UpdateCredentials(ctx context.Context, username, password string) error {
	c.exec.SetCredentials(username, password)
	_, err := c.exec.FetchToken(ctx)
	return err
}

// FetchToken trades the Basic credentials for a session token used by later requests.
func (c *Client) FetchToken(ctx context.Context) (string, error) {
	return c.exec.FetchToken(ctx)
}

// Logout closes the session; later requests use Basic authentication again.
func (c *Client) Logout(ctx context.Context) error {
	return c.exec.Logout(ctx)
}

// AuthState reports the position in the token lifecycle.
func (c *Client) AuthState() AuthState {
	return c.exec.AuthState()
}
