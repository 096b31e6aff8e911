// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/adrixdax/FMProKit2/internal/models"
)

// StatusError is returned for a response outside the 2xx range.
type StatusError struct {
	StatusCode int
	Body       []byte
	// OData is the parsed `{"error": ...}` payload, when the body carried one.
	OData *models.ODataError
}

// NewStatusError parses body for an OData error payload.
func NewStatusError(statusCode int, body []byte) *StatusError {
	e := &StatusError{StatusCode: statusCode, Body: body}
	var envelope models.ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		e.OData = envelope.Error
	}
	return e
}

func (e *StatusError) Error() string {
	if e.OData == nil {
		if len(e.Body) == 0 {
			return fmt.Sprintf("HTTP %d", e.StatusCode)
		}
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, string(e.Body))
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "OData error (HTTP %d)", e.StatusCode)
	if e.OData.Code != "" {
		fmt.Fprintf(&msg, " [%s]", e.OData.Code)
	}
	fmt.Fprintf(&msg, ": %s", e.OData.Message)
	if e.OData.Target != "" {
		fmt.Fprintf(&msg, " (target: %s)", e.OData.Target)
	}
	if len(e.OData.Details) > 0 {
		msg.WriteString(" | Details: ")
		for i, d := range e.OData.Details {
			if i > 0 {
				msg.WriteString("; ")
			}
			msg.WriteString(d.Message)
		}
	}
	return msg.String()
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
