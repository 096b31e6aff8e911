// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package odata

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/adrixdax/FMProKit2/internal/constants"
)

// Record addresses one record: `table('id')`.
func Record(table string, id Identifier) string {
	return fmt.Sprintf("%s(%s)", table, id.PathSegment())
}

// Field addresses one field of a record: `table('id')/field`.
func Field(table string, id Identifier, field string) string {
	return Record(table, id) + "/" + field
}

// Value addresses the raw content of a field (container data): `table('id')/field/$value`.
func Value(table string, id Identifier, field string) string {
	return Field(table, id, field) + "/" + constants.ValueSegment
}

// Count addresses the record count of a table: `table/$count`.
func Count(table string) string {
	return table + "/" + constants.CountSegment
}

// Top is the shorthand `table?$top=n`.
func Top(table string, n int) string {
	return withQuery(table, []string{constants.QueryTop + "=" + strconv.Itoa(n)})
}

// Skip is the shorthand `table?$skip=n`.
func Skip(table string, n int) string {
	return withQuery(table, []string{constants.QuerySkip + "=" + strconv.Itoa(n)})
}

// Filtered is `table?$filter=<filter>`.
func Filtered(table string, f Filter) string {
	return withQuery(table, []string{constants.QueryFilter + "=" + f.String()})
}

// WithRawQuery appends a caller-written query string: `table?query`.
func WithRawQuery(table, query string) string {
	return table + "?" + query
}

// Metadata is the EDMX document endpoint.
func Metadata() string {
	return constants.MetadataEndpoint
}

// ServiceDocument is the service root, which lists the tables of the database.
func ServiceDocument() string {
	return constants.ServiceDocEndpoint
}

// CrossJoin renders `$crossjoin(t1,t2)?<query>&$expand=<elementType>($select=*)`.
// An empty query leaves only the $expand clause.
func CrossJoin(tables []string, query, elementType string) string {
	expand := fmt.Sprintf("%s=%s(%s=*)", constants.QueryExpand, elementType, constants.QuerySelect)
	var clauses []string
	if query != "" {
		clauses = append(clauses, query)
	}
	clauses = append(clauses, expand)
	return withQuery(fmt.Sprintf("%s(%s)", constants.CrossJoinSegment, strings.Join(tables, ",")), clauses)
}

// ElementTypeName returns the name used in a cross-join $expand for T: the element
// type for slices, arrays and maps, the bare type name otherwise. Pointers are
// dereferenced.
func ElementTypeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		t = t.Elem()
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// Tables is the FileMaker_Tables system collection.
func Tables() string {
	return constants.TablesEndpoint
}

// TableSchema addresses one table definition.
func TableSchema(table string) string {
	return constants.TablesEndpoint + "/" + table
}

// ColumnSchema addresses one field definition.
func ColumnSchema(table, field string) string {
	return TableSchema(table) + "/" + field
}

// Indexes addresses the index collection of a table.
func Indexes(table string) string {
	return constants.IndexesEndpoint + "/" + table
}

// IndexSchema addresses one index of a table.
func IndexSchema(table, index string) string {
	return Indexes(table) + "/" + index
}

// Script addresses a script invocation: `Script.name`.
func Script(name string) string {
	return constants.ScriptPrefix + name
}
