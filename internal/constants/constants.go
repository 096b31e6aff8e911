// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package constants

// HTTP methods used by the FileMaker OData API
const (
	GET    = "GET"
	POST   = "POST"
	PATCH  = "PATCH"
	DELETE = "DELETE"
)

// OData system query options
const (
	QueryFilter  = "$filter"
	QuerySelect  = "$select"
	QueryExpand  = "$expand"
	QueryOrderBy = "$orderby"
	QueryTop     = "$top"
	QuerySkip    = "$skip"
)

// OData path segments
const (
	MetadataEndpoint   = "$metadata"
	ServiceDocEndpoint = ""
	CountSegment       = "$count"
	ValueSegment       = "$value"
	CrossJoinSegment   = "$crossjoin"
)

// FileMaker system tables and script prefix
const (
	TablesEndpoint  = "FileMaker_Tables"
	IndexesEndpoint = "FileMaker_Indexes"
	ScriptPrefix    = "Script."
)

// Connection defaults
const (
	DefaultScheme    = "https"
	DefaultBasePath  = "fmi/odata"
	DataAPIBasePath  = "fmi/data"
	DataAPIVersion   = "vLatest"
	SessionsSegment  = "sessions"
	DatabasesSegment = "databases"
	BearerScheme     = "Bearer"
	BasicScheme      = "Basic"
)

// HTTP headers
const (
	ContentType   = "Content-Type"
	Accept        = "Accept"
	Authorization = "Authorization"
	UserAgent     = "User-Agent"
)

// Content types
const (
	ContentTypeJSON = "application/json"
	ContentTypeXML  = "application/xml"
	ContentTypeAny  = "*/*"
)

// Default values
const (
	DefaultUserAgent = "FMProKit/2.0 (Go)"
	DefaultTimeout   = 30 // seconds
	DefaultBatchSize = 10
)
