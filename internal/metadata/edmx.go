// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package metadata

import "encoding/xml"

// EDMX represents the root EDMX document FileMaker serves at $metadata.
type EDMX struct {
	XMLName      xml.Name     `xml:"Edmx"`
	Version      string       `xml:"Version,attr"`
	DataServices DataServices `xml:"DataServices"`
}

// DataServices contains the schemas
type DataServices struct {
	Schemas []Schema `xml:"Schema"`
}

// Schema contains entity types, containers, actions and functions
type Schema struct {
	Namespace        string            `xml:"Namespace,attr"`
	EntityTypes      []EntityType      `xml:"EntityType"`
	EntityContainers []EntityContainer `xml:"EntityContainer"`
	Functions        []Operation       `xml:"Function"`
	Actions          []Operation       `xml:"Action"`
}

// EntityType is a table occurrence.
type EntityType struct {
	Name                 string               `xml:"Name,attr"`
	Key                  Key                  `xml:"Key"`
	Properties           []Property           `xml:"Property"`
	NavigationProperties []NavigationProperty `xml:"NavigationProperty"`
}

// Key lists the primary key fields.
type Key struct {
	PropertyRefs []PropertyRef `xml:"PropertyRef"`
}

// PropertyRef references a key property
type PropertyRef struct {
	Name string `xml:"Name,attr"`
}

// Property is a field.
type Property struct {
	Name         string `xml:"Name,attr"`
	Type         string `xml:"Type,attr"`
	Nullable     string `xml:"Nullable,attr"`
	MaxLength    string `xml:"MaxLength,attr"`
	DefaultValue string `xml:"DefaultValue,attr"`
}

// NavigationProperty is a relationship to another table occurrence.
type NavigationProperty struct {
	Name     string `xml:"Name,attr"`
	Type     string `xml:"Type,attr"`
	Nullable string `xml:"Nullable,attr"`
	Partner  string `xml:"Partner,attr"`
}

// EntityContainer holds the entity sets and operation imports.
type EntityContainer struct {
	Name            string            `xml:"Name,attr"`
	EntitySets      []EntitySet       `xml:"EntitySet"`
	FunctionImports []OperationImport `xml:"FunctionImport"`
	ActionImports   []OperationImport `xml:"ActionImport"`
}

// EntitySet exposes an entity type under a URL name.
type EntitySet struct {
	Name       string `xml:"Name,attr"`
	EntityType string `xml:"EntityType,attr"`
}

// OperationImport exposes a function or action at the service root.
type OperationImport struct {
	Name     string `xml:"Name,attr"`
	Function string `xml:"Function,attr"`
	Action   string `xml:"Action,attr"`
}

// Operation is a Function or Action declaration.
type Operation struct {
	Name       string      `xml:"Name,attr"`
	IsBound    string      `xml:"IsBound,attr"`
	Parameters []Parameter `xml:"Parameter"`
	ReturnType *ReturnType `xml:"ReturnType"`
}

// Parameter is an operation argument.
type Parameter struct {
	Name     string `xml:"Name,attr"`
	Type     string `xml:"Type,attr"`
	Nullable string `xml:"Nullable,attr"`
}

// ReturnType is an operation result type.
type ReturnType struct {
	Type string `xml:"Type,attr"`
}
