// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package models

import "fmt"

// ODataError represents an OData error response
type ODataError struct {
	Code       string                 `json:"code,omitempty"`
	Message    string                 `json:"message"`
	Details    []ODataErrorDetail     `json:"details,omitempty"`
	InnerError map[string]interface{} `json:"innererror,omitempty"`
	Target     string                 `json:"target,omitempty"`
}

// ODataErrorDetail represents detailed error information
type ODataErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Target  string `json:"target,omitempty"`
}

// ErrorEnvelope is the `{"error": {...}}` wrapper FileMaker uses for failures.
type ErrorEnvelope struct {
	Error *ODataError `json:"error"`
}

func (e *ODataError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("OData error %s: %s", e.Code, e.Message)
}
