// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

// Package metadata parses the EDMX document FileMaker serves at $metadata into table
// and field descriptions.
package metadata

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/models"
)

var (
	ErrNoSchema    = errors.New("no schemas found in metadata")
	ErrNoContainer = errors.New("no entity container found in metadata")
)

// Parse decodes an EDMX document. serviceRoot is recorded as-is.
func Parse(data []byte, serviceRoot string) (*models.Metadata, error) {
	var edmx EDMX
	if err := xml.Unmarshal(data, &edmx); err != nil {
		return nil, fmt.Errorf("failed to parse metadata XML: %w", err)
	}
	if len(edmx.DataServices.Schemas) == 0 {
		return nil, ErrNoSchema
	}

	var main *Schema
	for i := range edmx.DataServices.Schemas {
		if len(edmx.DataServices.Schemas[i].EntityContainers) > 0 {
			main = &edmx.DataServices.Schemas[i]
			break
		}
	}
	if main == nil {
		return nil, ErrNoContainer
	}
	container := main.EntityContainers[0]

	md := &models.Metadata{
		ServiceRoot:   serviceRoot,
		Namespace:     main.Namespace,
		ContainerName: container.Name,
		Version:       edmx.Version,
		Tables:        make(map[string]*models.EntityTable),
		EntitySets:    make(map[string]string),
		Operations:    make(map[string]*models.Operation),
		ParsedAt:      time.Now(),
	}

	var functions, actions []Operation
	for _, schema := range edmx.DataServices.Schemas {
		for _, et := range schema.EntityTypes {
			md.Tables[et.Name] = parseEntityType(et)
		}
		functions = append(functions, schema.Functions...)
		actions = append(actions, schema.Actions...)
	}

	for _, es := range container.EntitySets {
		md.EntitySets[es.Name] = localName(es.EntityType)
	}

	for _, fi := range container.FunctionImports {
		if op := findOperation(functions, fi.Function); op != nil {
			md.Operations[fi.Name] = parseOperation(fi.Name, constants.GET, op)
		}
	}
	for _, ai := range container.ActionImports {
		if op := findOperation(actions, ai.Action); op != nil {
			md.Operations[ai.Name] = parseOperation(ai.Name, constants.POST, op)
		}
	}

	return md, nil
}

func parseEntityType(et EntityType) *models.EntityTable {
	table := &models.EntityTable{
		Name:      et.Name,
		Fields:    make([]*models.EntityField, 0, len(et.Properties)),
		KeyFields: make([]string, 0, len(et.Key.PropertyRefs)),
	}
	for _, ref := range et.Key.PropertyRefs {
		table.KeyFields = append(table.KeyFields, ref.Name)
	}
	for _, p := range et.Properties {
		table.Fields = append(table.Fields, &models.EntityField{
			Name:      p.Name,
			Type:      normalizeType(p.Type),
			Nullable:  p.Nullable != "false",
			IsKey:     contains(table.KeyFields, p.Name),
			MaxLength: p.MaxLength,
			Default:   p.DefaultValue,
		})
	}
	for _, nav := range et.NavigationProperties {
		table.Relations = append(table.Relations, &models.Relation{
			Name:     nav.Name,
			Target:   normalizeType(nav.Type),
			Partner:  nav.Partner,
			Nullable: nav.Nullable != "false",
		})
	}
	return table
}

func parseOperation(name, method string, op *Operation) *models.Operation {
	out := &models.Operation{
		Name:       name,
		HTTPMethod: method,
		Parameters: make([]*models.Parameter, 0, len(op.Parameters)),
	}
	if op.ReturnType != nil && op.ReturnType.Type != "" {
		out.ReturnType = normalizeType(op.ReturnType.Type)
	}
	for _, p := range op.Parameters {
		if p.Name == "bindingParameter" {
			continue
		}
		out.Parameters = append(out.Parameters, &models.Parameter{
			Name:     p.Name,
			Type:     normalizeType(p.Type),
			Nullable: p.Nullable != "false",
		})
	}
	return out
}

func findOperation(ops []Operation, qualified string) *Operation {
	name := localName(qualified)
	for i := range ops {
		if ops[i].Name == name {
			return &ops[i]
		}
	}
	return nil
}

// normalizeType strips the schema namespace from non-Edm types, also inside
// Collection(...).
func normalizeType(typeName string) string {
	if strings.HasPrefix(typeName, "Collection(") && strings.HasSuffix(typeName, ")") {
		inner := typeName[len("Collection(") : len(typeName)-1]
		return "Collection(" + normalizeType(inner) + ")"
	}
	if strings.HasPrefix(typeName, "Edm.") {
		return typeName
	}
	return localName(typeName)
}

func localName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
