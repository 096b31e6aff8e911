// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package odata turns structured query intents into canonical OData endpoint strings.
//
// Every function here is pure. Input checks belong to the caller (see Query.Validate
// and the validate package); the builders assume their inputs already passed them.
package odata

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/errs"
	"github.com/adrixdax/FMProKit2/internal/validate"
)

// FilterOperator is one of the two-letter OData comparison tokens.
type FilterOperator string

const (
	Equal          FilterOperator = "eq"
	NotEqual       FilterOperator = "ne"
	GreaterThan    FilterOperator = "gt"
	LessThan       FilterOperator = "lt"
	GreaterOrEqual FilterOperator = "ge"
	LessOrEqual    FilterOperator = "le"
)

// Valid reports whether op is a known operator.
func (op FilterOperator) Valid() bool {
	switch op {
	case Equal, NotEqual, GreaterThan, LessThan, GreaterOrEqual, LessOrEqual:
		return true
	}
	return false
}

// Direction is the $orderby direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Filter is a single `field op value` comparison.
type Filter struct {
	Field string
	Op    FilterOperator
	Value any
}

// String renders the filter expression, e.g. `status eq 2`.
func (f Filter) String() string {
	return fmt.Sprintf("%s %s %s", f.Field, f.Op, FormatValue(f.Value))
}

// Validate checks that field, operator and value are all present.
func (f Filter) Validate() error {
	if err := validate.Field(f.Field); err != nil {
		return err
	}
	if !f.Op.Valid() || f.Value == nil {
		return errs.Input("odata.Filter", errs.ErrIncompleteFilter)
	}
	return nil
}

// Order is an $orderby clause.
type Order struct {
	Field     string
	Direction Direction
}

// Query describes one collection request. The zero value of every optional part means
// "absent".
type Query struct {
	Table  string
	Filter *Filter
	Order  *Order
	Top    *int
	Skip   *int
	Select []string
}

// From starts a query on table.
func From(table string) Query {
	return Query{Table: table}
}

// Where sets the filter clause.
func (q Query) Where(field string, op FilterOperator, value any) Query {
	q.Filter = &Filter{Field: field, Op: op, Value: value}
	return q
}

// OrderBy sets the order clause.
func (q Query) OrderBy(field string, dir Direction) Query {
	q.Order = &Order{Field: field, Direction: dir}
	return q
}

// Limit sets $top.
func (q Query) Limit(n int) Query {
	q.Top = &n
	return q
}

// Offset sets $skip.
func (q Query) Offset(n int) Query {
	q.Skip = &n
	return q
}

// Fields sets the $select projection.
func (q Query) Fields(fields ...string) Query {
	q.Select = fields
	return q
}

// Validate runs every check the query needs before Build.
func (q Query) Validate() error {
	if err := validate.Table(q.Table); err != nil {
		return err
	}
	if q.Filter != nil {
		if err := q.Filter.Validate(); err != nil {
			return err
		}
	}
	if q.Order != nil {
		if err := validate.Field(q.Order.Field); err != nil {
			return err
		}
		if q.Order.Direction != Asc && q.Order.Direction != Desc {
			return errs.Input("odata.Order", fmt.Errorf("unknown direction %q", q.Order.Direction))
		}
	}
	if q.Top != nil {
		if err := validate.Number(*q.Top); err != nil {
			return err
		}
	}
	if q.Skip != nil {
		if err := validate.Number(*q.Skip); err != nil {
			return err
		}
	}
	return validate.Fields(q.Select)
}

// Clauses returns the query options in wire order: filter, orderby, top, skip, select.
func (q Query) Clauses() []string {
	var clauses []string
	if q.Filter != nil {
		clauses = append(clauses, constants.QueryFilter+"="+q.Filter.String())
	}
	if q.Order != nil {
		clauses = append(clauses, fmt.Sprintf("%s=%s %s", constants.QueryOrderBy, q.Order.Field, q.Order.Direction))
	}
	if q.Top != nil {
		clauses = append(clauses, constants.QueryTop+"="+strconv.Itoa(*q.Top))
	}
	if q.Skip != nil {
		clauses = append(clauses, constants.QuerySkip+"="+strconv.Itoa(*q.Skip))
	}
	if len(q.Select) > 0 {
		clauses = append(clauses, constants.QuerySelect+"="+strings.Join(q.Select, ","))
	}
	return clauses
}

// Build renders the query as `table?clause&clause`. No `?` is emitted without clauses.
func Build(q Query) string {
	return withQuery(q.Table, q.Clauses())
}

func withQuery(path string, clauses []string) string {
	if len(clauses) == 0 {
		return path
	}
	return path + "?" + strings.Join(clauses, "&")
}

// FormatValue renders a filter literal: strings quoted with embedded quotes doubled,
// numbers, booleans, GUIDs and timestamps bare. Named types are rendered by their
// underlying kind and pointers by the value they point to; a nil pointer is null.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return quote(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case uuid.UUID:
		return strings.ToUpper(val.String())
	case time.Time:
		return val.Format(time.RFC3339)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return FormatValue(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.String:
		return quote(rv.String())
	}

	if s, ok := v.(fmt.Stringer); ok {
		return quote(s.String())
	}
	return quote(fmt.Sprintf("%v", v))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
