// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package fmodata

import (
	"context"

	"github.com/adrixdax/FMProKit2/internal/client"
	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/decode"
	"github.com/adrixdax/FMProKit2/internal/errs"
	"github.com/adrixdax/FMProKit2/internal/metadata"
	"github.com/adrixdax/FMProKit2/internal/models"
	"github.com/adrixdax/FMProKit2/internal/odata"
	"github.com/adrixdax/FMProKit2/internal/validate"
)

// MetadataBytes returns the raw EDMX document.
func (c *Client) MetadataBytes(ctx context.Context) ([]byte, error) {
	return client.Execute[[]byte](ctx, c.exec, client.Request{
		Method:   constants.GET,
		Endpoint: odata.Metadata(),
		Accept:   constants.ContentTypeXML,
	}, decode.Binary)
}

// MetadataString returns the EDMX document as text.
func (c *Client) MetadataString(ctx context.Context) (string, error) {
	data, err := c.MetadataBytes(ctx)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Metadata fetches and parses the EDMX document.
func (c *Client) Metadata(ctx context.Context) (*Metadata, error) {
	data, err := c.MetadataBytes(ctx)
	if err != nil {
		return nil, err
	}
	md, err := metadata.Parse(data, c.BaseURL())
	if err != nil {
		return nil, errs.E(errs.RequestFailure, "fmodata.Metadata", err)
	}
	return md, nil
}

// ListTables reads the service document, which names every table of the database.
func (c *Client) ListTables(ctx context.Context) ([]TableValue, error) {
	return get[[]models.TableValue](ctx, c, odata.ServiceDocument(), decode.Collection)
}

// CreateTable creates table with the given fields.
func (c *Client) CreateTable(ctx context.Context, table string, fields []FieldDefinition) (TableDefinition, error) {
	if err := validateDefinition(table, fields); err != nil {
		return TableDefinition{}, err
	}
	return send[models.TableDefinition](ctx, c, constants.POST, odata.Tables(),
		models.TableDefinition{TableName: table, Fields: fields})
}

// AddColumns adds fields to an existing table.
func (c *Client) AddColumns(ctx context.Context, table string, fields []FieldDefinition) (TableDefinition, error) {
	if err := validateDefinition(table, fields); err != nil {
		return TableDefinition{}, err
	}
	return send[models.TableDefinition](ctx, c, constants.PATCH, odata.TableSchema(table),
		models.ColumnsDefinition{Fields: fields})
}

// DeleteTable drops table.
func (c *Client) DeleteTable(ctx context.Context, table string) (bool, error) {
	if err := validate.Table(table); err != nil {
		return false, err
	}
	return c.exec.Delete(ctx, odata.TableSchema(table))
}

// DeleteColumn drops one field of table.
func (c *Client) DeleteColumn(ctx context.Context, table, field string) (bool, error) {
	if err := validate.Table(table); err != nil {
		return false, err
	}
	if err := validate.Field(field); err != nil {
		return false, err
	}
	return c.exec.Delete(ctx, odata.ColumnSchema(table, field))
}

// CreateIndex indexes the field named index.
func (c *Client) CreateIndex(ctx context.Context, table, index string) (IndexDefinition, error) {
	if err := validateIndex(table, index); err != nil {
		return IndexDefinition{}, err
	}
	return send[models.IndexDefinition](ctx, c, constants.POST, odata.Indexes(table),
		models.IndexDefinition{IndexName: index})
}

// DeleteIndex removes the index on the field named index.
func (c *Client) DeleteIndex(ctx context.Context, table, index string) (bool, error) {
	if err := validateIndex(table, index); err != nil {
		return false, err
	}
	return c.exec.Delete(ctx, odata.IndexSchema(table, index))
}

func validateDefinition(table string, fields []FieldDefinition) error {
	if err := validate.Table(table); err != nil {
		return err
	}
	if len(fields) == 0 {
		return errs.Input("fmodata.validateDefinition", errs.ErrFieldNameMissing)
	}
	for _, f := range fields {
		if err := validate.Field(f.Name); err != nil {
			return err
		}
		if err := validate.Struct(f); err != nil {
			return err
		}
	}
	return nil
}

func validateIndex(table, index string) error {
	if err := validate.Table(table); err != nil {
		return err
	}
	return validate.Index(index)
}
