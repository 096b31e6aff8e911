// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package validate holds the stateless checks run on names and bounds before any
// endpoint is built.
package validate

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/adrixdax/FMProKit2/internal/errs"
)

const (
	tagName   = "required"
	tagIndex  = "fmindex"
	tagNumber = "gte=0"
)

// Validator wraps a go-playground validator with the FileMaker naming rules registered.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation(tagIndex, isIndexName)
	return &Validator{v: v}
}

var std = New()

// isIndexName accepts letters, digits and underscore.
func isIndexName(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

func (val *Validator) name(op, s string, missing error) error {
	if err := val.v.Var(strings.TrimSpace(s), tagName); err != nil {
		return errs.Input(op, missing)
	}
	return nil
}

// Table fails when the table name is empty or whitespace-only.
func (val *Validator) Table(table string) error {
	return val.name("validate.Table", table, errs.ErrTableNameMissing)
}

// Field fails when the field name is empty or whitespace-only.
func (val *Validator) Field(field string) error {
	return val.name("validate.Field", field, errs.ErrFieldNameMissing)
}

// Query fails when a free-form query is empty or whitespace-only.
func (val *Validator) Query(query string) error {
	return val.name("validate.Query", query, errs.ErrQueryMissing)
}

// Script fails when the script name is empty or whitespace-only.
func (val *Validator) Script(name string) error {
	return val.name("validate.Script", name, errs.ErrScriptNameMissing)
}

// Struct runs the `validate` tags of v. Failures are reported as InvalidInput.
func (val *Validator) Struct(v any) error {
	if err := val.v.Struct(v); err != nil {
		return errs.Input("validate.Struct", err)
	}
	return nil
}

// Index trims the name, then reports ErrIndexMissing for an empty result and
// ErrInvalidIndex for anything outside letters, digits and underscore.
func (val *Validator) Index(index string) error {
	trimmed := strings.TrimSpace(index)
	if err := val.v.Var(trimmed, tagName); err != nil {
		return errs.Input("validate.Index", errs.ErrIndexMissing)
	}
	if err := val.v.Var(trimmed, tagIndex); err != nil {
		return errs.Input("validate.Index", errs.ErrInvalidIndex)
	}
	return nil
}

// Number fails for negative bounds.
func (val *Validator) Number(n int) error {
	if err := val.v.Var(n, tagNumber); err != nil {
		return errs.Input("validate.Number", errs.ErrNegativeNumber)
	}
	return nil
}

// Tables validates every name of a cross-join; an empty list is a missing table.
func (val *Validator) Tables(tables []string) error {
	if len(tables) == 0 {
		return errs.Input("validate.Tables", errs.ErrTableNameMissing)
	}
	for _, t := range tables {
		if err := val.Table(t); err != nil {
			return err
		}
	}
	return nil
}

// Fields validates every field name in order and returns the first failure.
func (val *Validator) Fields(fields []string) error {
	for _, f := range fields {
		if err := val.Field(f); err != nil {
			return err
		}
	}
	return nil
}

func Table(table string) error     { return std.Table(table) }
func Field(field string) error     { return std.Field(field) }
func Query(query string) error     { return std.Query(query) }
func Index(index string) error     { return std.Index(index) }
func Number(n int) error           { return std.Number(n) }
func Tables(tables []string) error { return std.Tables(tables) }
func Script(name string) error     { return std.Script(name) }
func Struct(v any) error           { return std.Struct(v) }
func Fields(fields []string) error { return std.Fields(fields) }
