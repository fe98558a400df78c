package template

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateSchema builds a JSON Schema (draft 2020-12) describing content
// files for this template, from its declared fields and blocks.
func (info *Info) GenerateSchema() map[string]any {
	properties := map[string]any{
		"meta": map[string]any{
			"type":        "object",
			"description": "Content file metadata",
			"properties": map[string]any{
				"template":         map[string]any{"type": "string", "description": "Template file path"},
				"template_id":      map[string]any{"type": "string", "description": "Template identifier"},
				"template_version": map[string]any{"type": "string", "description": "Template version"},
			},
			"required": []string{"template"},
		},
	}

	groups := make(map[string][]EditableField)
	var groupOrder []string
	for _, field := range info.Fields {
		group, _, _ := strings.Cut(field.Path, ".")
		if group == "blocks" {
			continue
		}
		if _, seen := groups[group]; !seen {
			groupOrder = append(groupOrder, group)
		}
		groups[group] = append(groups[group], field)
	}
	sort.Strings(groupOrder)
	for _, group := range groupOrder {
		properties[group] = fieldGroupSchema(group, groups[group])
	}

	if len(info.Blocks) > 0 {
		blockProps := make(map[string]any)
		for _, block := range info.Blocks {
			name := strings.TrimPrefix(block.Path, "blocks.")
			description := block.Title
			if description == "" {
				description = name
			}
			blockProps[name] = map[string]any{
				"type":        "object",
				"description": description,
				"properties": map[string]any{
					"title": map[string]any{"type": "string", "description": "Block title"},
					"format": map[string]any{
						"type":    "string",
						"enum":    []string{"markdown", "typst", "plain"},
						"default": "markdown",
					},
					"content": map[string]any{"type": "string", "description": "Block content"},
				},
			}
		}
		properties["blocks"] = map[string]any{
			"type":        "object",
			"description": "Content blocks",
			"properties":  blockProps,
		}
	}

	description := info.Description
	if description == "" {
		description = fmt.Sprintf("Schema for %s content files", info.ID)
	}

	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"$id":                  fmt.Sprintf("https://forma.dev/schemas/%s.schema.json", info.ID),
		"title":                fmt.Sprintf("%s Content Schema", info.ID),
		"description":          description,
		"type":                 "object",
		"properties":           properties,
		"required":             []string{"meta"},
		"additionalProperties": true,
	}
}

// fieldGroupSchema nests a group's fields into an object schema keyed by the
// path segments below the group prefix.
func fieldGroupSchema(group string, fields []EditableField) map[string]any {
	props := make(map[string]any)
	for _, field := range fields {
		rel := strings.TrimPrefix(field.Path, group+".")
		insertFieldSchema(props, strings.Split(rel, "."), field)
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

func insertFieldSchema(props map[string]any, parts []string, field EditableField) {
	if len(parts) == 0 {
		return
	}
	key := parts[0]
	if len(parts) == 1 {
		leaf := map[string]any{"type": schemaType(field.Type)}
		if field.Default != "" {
			leaf["default"] = field.Default
		}
		props[key] = leaf
		return
	}

	child, ok := props[key].(map[string]any)
	if !ok {
		child = map[string]any{
			"type":       "object",
			"properties": make(map[string]any),
		}
		props[key] = child
	}
	insertFieldSchema(child["properties"].(map[string]any), parts[1:], field)
}

func schemaType(fieldType string) string {
	switch fieldType {
	case "number", "integer", "boolean":
		return fieldType
	default:
		return "string"
	}
}
