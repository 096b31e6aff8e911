// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package client

import (
	"strings"

	"github.com/adrixdax/FMProKit2/internal/constants"
)

// Version is the OData protocol version segment of the base URL.
type Version string

const (
	V1      Version = "v1"
	V2      Version = "v2"
	V4      Version = "v4"
	VLatest Version = "vLatest"
)

// Connection identifies one FileMaker database. It never changes after construction.
type Connection struct {
	Scheme   string
	Host     string
	Version  Version
	Database string
	BasePath string
}

// NewConnection fills in the default scheme and base path.
func NewConnection(host string, version Version, database string) Connection {
	return Connection{
		Scheme:   constants.DefaultScheme,
		Host:     host,
		Version:  version,
		Database: database,
		BasePath: constants.DefaultBasePath,
	}
}

// BaseURL is `scheme://host/{basePath}/{version}/{database}/`.
func (c Connection) BaseURL() string {
	return c.Scheme + "://" + c.Host + "/" + strings.Trim(c.BasePath, "/") + "/" +
		string(c.Version) + "/" + c.Database + "/"
}

// SessionURL is the Data API endpoint that trades credentials for a token.
func (c Connection) SessionURL() string {
	return c.Scheme + "://" + c.Host + "/" + constants.DataAPIBasePath + "/" +
		constants.DataAPIVersion + "/" + constants.DatabasesSegment + "/" + c.Database + "/" +
		constants.SessionsSegment
}
