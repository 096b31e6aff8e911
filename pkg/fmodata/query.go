// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package fmodata

import (
	"context"

	"github.com/adrixdax/FMProKit2/internal/client"
	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/decode"
	"github.com/adrixdax/FMProKit2/internal/odata"
	"github.com/adrixdax/FMProKit2/internal/validate"
)

// ExecuteQueryGet sends `GET table?query` and decodes the whole reply into T, so T
// should mirror the response (for collections, a struct with a `value` field).
func ExecuteQueryGet[T any](ctx context.Context, c *Client, table, query string) (T, error) {
	return executeQuery[T](ctx, c, constants.GET, table, query, nil)
}

// ExecuteQueryPost sends `POST table?query` with body.
func ExecuteQueryPost[T any](ctx context.Context, c *Client, table, query string, body any) (T, error) {
	return executeQuery[T](ctx, c, constants.POST, table, query, body)
}

// ExecuteQueryPatch sends `PATCH table?query` with body.
func ExecuteQueryPatch[T any](ctx context.Context, c *Client, table, query string, body any) (T, error) {
	return executeQuery[T](ctx, c, constants.PATCH, table, query, body)
}

// ExecuteQueryDelete sends `DELETE table?query`.
func (c *Client) ExecuteQueryDelete(ctx context.Context, table, query string) (bool, error) {
	return c.DeleteRecordsByQuery(ctx, table, query)
}

func executeQuery[T any](ctx context.Context, c *Client, method, table, query string, body any) (T, error) {
	var zero T
	if err := validateTableQuery(table, query); err != nil {
		return zero, err
	}
	return client.Execute[T](ctx, c.exec, client.Request{
		Method:   method,
		Endpoint: odata.WithRawQuery(table, query),
		Body:     body,
	}, decode.Object)
}

// CrossJoin joins tables and expands the element type of T, e.g. T = []Place expands
// `Place($select=*)`. query may be empty.
func CrossJoin[T any](ctx context.Context, c *Client, tables []string, query string) (T, error) {
	var zero T
	if err := validate.Tables(tables); err != nil {
		return zero, err
	}
	return get[T](ctx, c, odata.CrossJoin(tables, query, odata.ElementTypeName[T]()), decode.Collection)
}
