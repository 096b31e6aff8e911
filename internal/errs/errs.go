// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package errs defines the error taxonomy shared by every layer of the client.
//
// Every public operation fails with exactly one Kind. Callers branch on the kind,
// either with errors.Is against the kind sentinels or with KindOf:
//
//	if errors.Is(err, errs.ErrInvalidInput) {
//		// bad table name, negative bound, ...
//	}
//
// The concrete validation failures (ErrTableNameMissing, ErrInvalidIndex, ...) remain
// reachable through errors.Is as well, so tests can tell them apart.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	InvalidInput
	InvalidURL
	AuthorizationFailure
	TokenFetchFailure
	RequestFailure
)

// Kind sentinels, matched by errors.Is on any *Error of that kind.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidURL    = errors.New("invalid URL")
	ErrAuthorization = errors.New("authorization failed")
	ErrTokenFetch    = errors.New("token fetch failed")
	ErrRequestFailed = errors.New("request failed")
)

// Validation failures. All of them are reported with kind InvalidInput.
var (
	ErrTableNameMissing   = errors.New("table name missing")
	ErrFieldNameMissing   = errors.New("field name missing")
	ErrQueryMissing       = errors.New("query missing")
	ErrIndexMissing       = errors.New("index name missing")
	ErrInvalidIndex       = errors.New("index name contains invalid characters")
	ErrNegativeNumber     = errors.New("number must not be negative")
	ErrInvalidIdentifier  = errors.New("unsupported record identifier")
	ErrIncompleteFilter   = errors.New("filter requires field, operator and value")
	ErrCredentialsMissing = errors.New("credentials missing")
	ErrNoSession          = errors.New("no session token")
	ErrScriptNameMissing  = errors.New("script name missing")
	ErrEncodeBody         = errors.New("request body could not be encoded")
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case InvalidURL:
		return "invalid URL"
	case AuthorizationFailure:
		return "authorization failure"
	case TokenFetchFailure:
		return "token fetch failure"
	case RequestFailure:
		return "request failure"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case InvalidInput:
		return ErrInvalidInput
	case InvalidURL:
		return ErrInvalidURL
	case AuthorizationFailure:
		return ErrAuthorization
	case TokenFetchFailure:
		return ErrTokenFetch
	case RequestFailure:
		return ErrRequestFailed
	default:
		return nil
	}
}

// Error is the single error type returned by the client. Err keeps the original cause
// for diagnostics.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E builds an *Error.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Input wraps a validation failure as InvalidInput.
func Input(op string, err error) *Error {
	return E(InvalidInput, op, err)
}
