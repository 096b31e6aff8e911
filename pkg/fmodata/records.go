// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package fmodata

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/adrixdax/FMProKit2/internal/client"
	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/decode"
	"github.com/adrixdax/FMProKit2/internal/odata"
	"github.com/adrixdax/FMProKit2/internal/validate"
)

// GetTable runs q and decodes the `value` array into T, typically a slice.
func GetTable[T any](ctx context.Context, c *Client, q Query) (T, error) {
	var zero T
	if err := q.Validate(); err != nil {
		return zero, err
	}
	return get[T](ctx, c, odata.Build(q), decode.Collection)
}

// GetRecord fetches one record by primary key. id is a string, uuid.UUID, integer or
// Identifier.
func GetRecord[T any](ctx context.Context, c *Client, table string, id any) (T, error) {
	var zero T
	key, err := recordKey(table, id)
	if err != nil {
		return zero, err
	}
	return get[T](ctx, c, odata.Record(table, key), decode.Object)
}

// GetDataField downloads the raw content of a container field.
func (c *Client) GetDataField(ctx context.Context, table string, id any, field string) ([]byte, error) {
	key, err := recordKey(table, id)
	if err != nil {
		return nil, err
	}
	if err := validate.Field(field); err != nil {
		return nil, err
	}
	return client.Execute[[]byte](ctx, c.exec, client.Request{
		Method:   constants.GET,
		Endpoint: odata.Value(table, key, field),
		Accept:   constants.ContentTypeAny,
	}, decode.Binary)
}

// GetTopTable returns the first n records of table.
func GetTopTable[T any](ctx context.Context, c *Client, table string, n int) (T, error) {
	var zero T
	if err := validateTableBound(table, n); err != nil {
		return zero, err
	}
	return get[T](ctx, c, odata.Top(table, n), decode.Collection)
}

// GetSkipTable returns the records of table after skipping n.
func GetSkipTable[T any](ctx context.Context, c *Client, table string, n int) (T, error) {
	var zero T
	if err := validateTableBound(table, n); err != nil {
		return zero, err
	}
	return get[T](ctx, c, odata.Skip(table, n), decode.Collection)
}

// GetTableCount returns the number of records in table.
func (c *Client) GetTableCount(ctx context.Context, table string) (int, error) {
	if err := validate.Table(table); err != nil {
		return 0, err
	}
	return get[int](ctx, c, odata.Count(table), decode.EnvelopedScalar)
}

// GetField reads a single field of a record.
func GetField[T any](ctx context.Context, c *Client, table string, id any, field string) (T, error) {
	var zero T
	key, err := recordKey(table, id)
	if err != nil {
		return zero, err
	}
	if err := validate.Field(field); err != nil {
		return zero, err
	}
	return get[T](ctx, c, odata.Field(table, key, field), decode.EnvelopedScalar)
}

// GetRecords fetches several records concurrently and returns them in the order of
// ids. The first failure cancels the fetches still running.
func GetRecords[T any](ctx context.Context, c *Client, table string, ids []any) ([]T, error) {
	if err := validate.Table(table); err != nil {
		return nil, err
	}
	keys := make([]Identifier, len(ids))
	for i, id := range ids {
		key, err := recordKey(table, id)
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}

	records := make([]T, len(keys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(constants.DefaultBatchSize)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			rec, err := get[T](ctx, c, odata.Record(table, key), decode.Object)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateRecord inserts record into table and returns the stored record.
func CreateRecord[T any](ctx context.Context, c *Client, table string, record T) (T, error) {
	var zero T
	if err := validate.Table(table); err != nil {
		return zero, err
	}
	return send[T](ctx, c, constants.POST, table, record)
}

// EditRecord updates the record with primary key id.
func EditRecord[T any](ctx context.Context, c *Client, table string, id any, record T) (T, error) {
	var zero T
	key, err := recordKey(table, id)
	if err != nil {
		return zero, err
	}
	return send[T](ctx, c, constants.PATCH, odata.Record(table, key), record)
}

// EditRecordsByQuery applies record to every row matched by query, e.g.
// `$filter=status eq 1`.
func EditRecordsByQuery[T any](ctx context.Context, c *Client, table, query string, record T) (T, error) {
	var zero T
	if err := validateTableQuery(table, query); err != nil {
		return zero, err
	}
	return send[T](ctx, c, constants.PATCH, odata.WithRawQuery(table, query), record)
}

// DeleteRecord deletes one record. It reports true when the server answered with an
// empty body.
func (c *Client) DeleteRecord(ctx context.Context, table string, id any) (bool, error) {
	key, err := recordKey(table, id)
	if err != nil {
		return false, err
	}
	return c.exec.Delete(ctx, odata.Record(table, key))
}

// DeleteRecordsByQuery deletes every row matched by a raw query string.
func (c *Client) DeleteRecordsByQuery(ctx context.Context, table, query string) (bool, error) {
	if err := validateTableQuery(table, query); err != nil {
		return false, err
	}
	return c.exec.Delete(ctx, odata.WithRawQuery(table, query))
}

// DeleteRecordsByFilter deletes every row matched by filter.
func (c *Client) DeleteRecordsByFilter(ctx context.Context, table string, filter Filter) (bool, error) {
	if err := validate.Table(table); err != nil {
		return false, err
	}
	if err := filter.Validate(); err != nil {
		return false, err
	}
	return c.exec.Delete(ctx, odata.Filtered(table, filter))
}

func get[T any](ctx context.Context, c *Client, endpoint string, shape decode.Shape) (T, error) {
	return client.Execute[T](ctx, c.exec, client.Request{Method: constants.GET, Endpoint: endpoint}, shape)
}

func send[T any](ctx context.Context, c *Client, method, endpoint string, body any) (T, error) {
	return client.Execute[T](ctx, c.exec, client.Request{Method: method, Endpoint: endpoint, Body: body}, decode.Object)
}

func recordKey(table string, id any) (Identifier, error) {
	if err := validate.Table(table); err != nil {
		return nil, err
	}
	return odata.IDOf(id)
}

func validateTableBound(table string, n int) error {
	if err := validate.Table(table); err != nil {
		return err
	}
	return validate.Number(n)
}

func validateTableQuery(table, query string) error {
	if err := validate.Table(table); err != nil {
		return err
	}
	return validate.Query(query)
}
