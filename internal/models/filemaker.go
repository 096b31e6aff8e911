// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package models holds the payloads exchanged with FileMaker Server.
package models

// TableValue is one entry of the service document that lists the tables of a database.
type TableValue struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// ServiceDocument is the body returned by the service root.
type ServiceDocument struct {
	Context string       `json:"@odata.context,omitempty"`
	Value   []TableValue `json:"value"`
}

// FieldDefinition describes one column for FileMaker_Tables create and alter calls.
type FieldDefinition struct {
	Name               string `json:"name" validate:"required"`
	Type               string `json:"type" validate:"required"`
	Nullable           *bool  `json:"nullable,omitempty"`
	Primary            bool   `json:"primary,omitempty"`
	Unique             bool   `json:"unique,omitempty"`
	Global             bool   `json:"global,omitempty"`
	Default            string `json:"default,omitempty"`
	ExternalSecurePath string `json:"externalSecurePath,omitempty"`
}

// TableDefinition is the body of a table creation.
type TableDefinition struct {
	TableName string            `json:"tableName"`
	Fields    []FieldDefinition `json:"fields"`
}

// ColumnsDefinition is the body used to add columns to an existing table.
type ColumnsDefinition struct {
	Fields []FieldDefinition `json:"fields"`
}

// IndexDefinition names the field to index.
type IndexDefinition struct {
	IndexName string `json:"indexName"`
}

// ScriptCall carries the optional parameter of a script invocation.
type ScriptCall[T any] struct {
	ScriptParameterValue T `json:"scriptParameterValue"`
}

// ScriptResult is what FileMaker reports after running a script.
type ScriptResult struct {
	Code            *int    `json:"code,omitempty"`
	ResultParameter *string `json:"resultParameter,omitempty"`
	Message         *string `json:"message,omitempty"`
}

// Scripter wraps ScriptResult the way the server returns it.
type Scripter struct {
	ScriptResult ScriptResult `json:"scriptResult"`
}

// SessionResponse is the Data API reply to a session login.
type SessionResponse struct {
	Response struct {
		Token string `json:"token"`
	} `json:"response"`
	Messages []SessionMessage `json:"messages,omitempty"`
}

// SessionMessage is one status entry of a Data API reply.
type SessionMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
