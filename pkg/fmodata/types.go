// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package fmodata

import (
	"github.com/adrixdax/FMProKit2/internal/client"
	"github.com/adrixdax/FMProKit2/internal/errs"
	"github.com/adrixdax/FMProKit2/internal/models"
	"github.com/adrixdax/FMProKit2/internal/observe"
	"github.com/adrixdax/FMProKit2/internal/odata"
	"github.com/adrixdax/FMProKit2/internal/transport"
)

// Connection and authentication.
type (
	Version     = client.Version
	AuthState   = client.AuthState
	Transport   = transport.Transport
	StatusError = transport.StatusError
	Metrics     = observe.Metrics
)

const (
	V1      = client.V1
	V2      = client.V2
	V4      = client.V4
	VLatest = client.VLatest

	Unauthenticated = client.Unauthenticated
	CredentialsSet  = client.CredentialsSet
	Authenticated   = client.Authenticated
)

// NewMetrics creates unregistered request metrics.
var NewMetrics = observe.NewMetrics

// Query building.
type (
	Query          = odata.Query
	Filter         = odata.Filter
	Order          = odata.Order
	FilterOperator = odata.FilterOperator
	Direction      = odata.Direction
	Identifier     = odata.Identifier
	StringID       = odata.StringID
	UUIDID         = odata.UUIDID
	NumericID      = odata.NumericID
)

const (
	Equal          = odata.Equal
	NotEqual       = odata.NotEqual
	GreaterThan    = odata.GreaterThan
	LessThan       = odata.LessThan
	GreaterOrEqual = odata.GreaterOrEqual
	LessOrEqual    = odata.LessOrEqual

	Asc  = odata.Asc
	Desc = odata.Desc
)

// From starts a query on table.
func From(table string) Query { return odata.From(table) }

// Payloads.
type (
	TableValue        = models.TableValue
	FieldDefinition   = models.FieldDefinition
	TableDefinition   = models.TableDefinition
	ColumnsDefinition = models.ColumnsDefinition
	IndexDefinition   = models.IndexDefinition
	ScriptResult      = models.ScriptResult
	Metadata          = models.Metadata
	EntityTable       = models.EntityTable
	EntityField       = models.EntityField
	ODataError        = models.ODataError
)

// Errors.
type (
	Error = errs.Error
	Kind  = errs.Kind
)

const (
	InvalidInput         = errs.InvalidInput
	InvalidURL           = errs.InvalidURL
	AuthorizationFailure = errs.AuthorizationFailure
	TokenFetchFailure    = errs.TokenFetchFailure
	RequestFailure       = errs.RequestFailure
)

var (
	ErrInvalidInput  = errs.ErrInvalidInput
	ErrInvalidURL    = errs.ErrInvalidURL
	ErrAuthorization = errs.ErrAuthorization
	ErrTokenFetch    = errs.ErrTokenFetch
	ErrRequestFailed = errs.ErrRequestFailed

	ErrTableNameMissing = errs.ErrTableNameMissing
	ErrFieldNameMissing = errs.ErrFieldNameMissing
	ErrQueryMissing     = errs.ErrQueryMissing
	ErrIndexMissing     = errs.ErrIndexMissing
	ErrInvalidIndex     = errs.ErrInvalidIndex
	ErrNegativeNumber   = errs.ErrNegativeNumber

	KindOf = errs.KindOf
)
