// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package models

import "time"

// Metadata is the parsed $metadata document of one database.
type Metadata struct {
	ServiceRoot   string                  `json:"service_root"`
	Namespace     string                  `json:"namespace"`
	ContainerName string                  `json:"container_name"`
	Version       string                  `json:"version"`
	Tables        map[string]*EntityTable `json:"tables"`
	EntitySets    map[string]string       `json:"entity_sets"`
	Operations    map[string]*Operation   `json:"operations,omitempty"`
	ParsedAt      time.Time               `json:"parsed_at"`
}

// EntityTable is a table as described by the EDMX entity type.
type EntityTable struct {
	Name      string         `json:"name"`
	Fields    []*EntityField `json:"fields"`
	KeyFields []string       `json:"key_fields"`
	Relations []*Relation    `json:"relations,omitempty"`
}

// Field returns the named field, or nil.
func (t *EntityTable) Field(name string) *EntityField {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EntityField is one column of a table.
type EntityField struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Nullable  bool   `json:"nullable"`
	IsKey     bool   `json:"is_key"`
	MaxLength string `json:"max_length,omitempty"`
	Default   string `json:"default,omitempty"`
}

// Relation is a navigation property: a relationship to another table occurrence.
type Relation struct {
	Name     string `json:"name"`
	Target   string `json:"target"`
	Partner  string `json:"partner,omitempty"`
	Nullable bool   `json:"nullable"`
}

// Operation is a bound or unbound action/function exposed by the service, which is how
// FileMaker publishes scripts.
type Operation struct {
	Name       string       `json:"name"`
	HTTPMethod string       `json:"http_method"`
	ReturnType string       `json:"return_type,omitempty"`
	Parameters []*Parameter `json:"parameters"`
}

// Parameter is one argument of an Operation.
type Parameter struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}
