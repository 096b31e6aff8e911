// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package decode turns raw response bytes into caller types. The call site picks the
// Shape; the payload is never sniffed to guess it.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Shape is the expected layout of a response body.
type Shape int

const (
	// Binary is the raw body, untouched (container fields, $metadata).
	Binary Shape = iota
	// Scalar is a bare JSON value.
	Scalar
	// EnvelopedScalar is a single value wrapped as {"value": v}, as returned for
	// $count and single-field reads.
	EnvelopedScalar
	// Object is one JSON object decoded directly.
	Object
	// Collection is {"value": [...]}.
	Collection
)

func (s Shape) String() string {
	switch s {
	case Binary:
		return "binary"
	case Scalar:
		return "scalar"
	case EnvelopedScalar:
		return "enveloped-scalar"
	case Object:
		return "object"
	case Collection:
		return "collection"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

var (
	// ErrBinaryTarget is returned when Binary is requested for a target other than []byte.
	ErrBinaryTarget = errors.New("binary shape requires a []byte target")
	// ErrUnknownShape is returned for a Shape outside the declared set.
	ErrUnknownShape = errors.New("unknown response shape")
)

// envelope is the OData wrapper around collections and single values.
type envelope[T any] struct {
	Value T `json:"value"`
}

// Decode interprets data according to shape.
func Decode[T any](data []byte, shape Shape) (T, error) {
	var out T
	switch shape {
	case Binary:
		p, ok := any(&out).(*[]byte)
		if !ok {
			return out, fmt.Errorf("%w, got %T", ErrBinaryTarget, out)
		}
		*p = data
		return out, nil
	case Scalar, Object:
		if err := json.Unmarshal(data, &out); err != nil {
			return out, fmt.Errorf("decode %s: %w", shape, err)
		}
		return out, nil
	case EnvelopedScalar, Collection:
		var env envelope[T]
		if err := json.Unmarshal(data, &env); err != nil {
			return out, fmt.Errorf("decode %s: %w", shape, err)
		}
		return env.Value, nil
	default:
		return out, fmt.Errorf("%w: %s", ErrUnknownShape, shape)
	}
}

// Deleted reports the outcome of a DELETE that the server accepted: an empty body means
// the record is gone, anything else is treated as not deleted.
func Deleted(body []byte) bool {
	return len(body) == 0
}
