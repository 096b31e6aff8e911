// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package odata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/adrixdax/FMProKit2/internal/errs"
)

// Identifier is a record primary key. The set of implementations is closed.
type Identifier interface {
	// PathSegment renders the key as it appears inside `table(...)`.
	PathSegment() string
	fmt.Stringer
	identifier()
}

// StringID is a text primary key.
type StringID string

// UUIDID is a GUID primary key, rendered upper-case the way FileMaker's Get(UUID)
// produces it.
type UUIDID uuid.UUID

// NumericID is an integer primary key (e.g. a serial number field).
type NumericID int64

func (id StringID) String() string  { return string(id) }
func (id UUIDID) String() string    { return strings.ToUpper(uuid.UUID(id).String()) }
func (id NumericID) String() string { return strconv.FormatInt(int64(id), 10) }

// FileMaker addresses every key kind through a quoted literal.
func (id StringID) PathSegment() string  { return quote(id.String()) }
func (id UUIDID) PathSegment() string    { return quote(id.String()) }
func (id NumericID) PathSegment() string { return quote(id.String()) }

func (StringID) identifier()  {}
func (UUIDID) identifier()    {}
func (NumericID) identifier() {}

// IDOf converts a loosely typed key into an Identifier. Unsupported kinds and blank
// text keys fail with InvalidInput.
func IDOf(v any) (Identifier, error) {
	switch id := v.(type) {
	case StringID:
		return stringID(string(id))
	case Identifier:
		return id, nil
	case string:
		return stringID(id)
	case uuid.UUID:
		return UUIDID(id), nil
	case int:
		return NumericID(id), nil
	case int32:
		return NumericID(id), nil
	case int64:
		return NumericID(id), nil
	case uint32:
		return NumericID(id), nil
	}
	return nil, errs.Input("odata.IDOf", fmt.Errorf("%w: %T", errs.ErrInvalidIdentifier, v))
}

func stringID(s string) (Identifier, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errs.Input("odata.IDOf", fmt.Errorf("%w: empty key", errs.ErrInvalidIdentifier))
	}
	return StringID(s), nil
}

// ParseID picks the narrowest variant for a key typed on the command line: GUIDs become
// UUIDID, integers NumericID, anything else StringID.
func ParseID(s string) Identifier {
	if u, err := uuid.Parse(s); err == nil {
		return UUIDID(u)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NumericID(n)
	}
	return StringID(s)
}
