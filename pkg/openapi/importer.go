// Package openapi derives form definitions from OpenAPI operations so
// existing API contracts can seed a form without hand-writing a document.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-dynaform/pkg/schema"
)

// ImportOptions tunes how documents are loaded and converted.
type ImportOptions struct {
	// ResolveReferences follows external $ref targets while loading.
	ResolveReferences bool
}

// Importer converts the JSON request body of an OpenAPI operation into a
// form definition.
type Importer struct {
	options ImportOptions
}

// New constructs an Importer with the given options.
func New(options ImportOptions) *Importer {
	return &Importer{options: options}
}

// Import loads an OpenAPI document and converts the named operation's JSON
// request body into a form. Properties become fields ordered by name so the
// result is stable across runs.
func (im *Importer) Import(ctx context.Context, raw []byte, operationID string) (*schema.FormSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	if operationID == "" {
		return nil, errors.New("openapi: operation id is required")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: im.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	body := requestBodySchema(operation)
	if body == nil {
		return nil, fmt.Errorf("openapi: operation %q has no JSON request body", operationID)
	}

	form := &schema.FormSchema{
		Title:       titleFor(operation, operationID),
		Description: operation.Description,
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := convertProperty(name, ref.Value, required[name])
		if !ok {
			continue
		}
		form.Fields = append(form.Fields, field)
	}

	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("openapi: operation %q has no convertible properties", operationID)
	}
	return form, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	body := media.Schema.Value
	if !body.Type.Is(openapi3.TypeObject) && len(body.Properties) == 0 {
		return nil
	}
	return body
}

func titleFor(operation *openapi3.Operation, operationID string) string {
	if operation.Summary != "" {
		return operation.Summary
	}
	return operationID
}

// convertProperty maps one string-typed property to a field. Non-string
// properties are skipped; forms carry text-shaped values only.
func convertProperty(name string, prop *openapi3.Schema, required bool) (schema.FieldDescriptor, bool) {
	if prop.Type == nil || !prop.Type.Is(openapi3.TypeString) {
		return schema.FieldDescriptor{}, false
	}

	field := schema.FieldDescriptor{
		ID:       name,
		Label:    labelFor(name, prop),
		Required: required,
	}

	switch {
	case len(prop.Enum) > 0:
		field.Type = schema.FieldTypeSelect
		for _, entry := range prop.Enum {
			value, ok := entry.(string)
			if !ok {
				continue
			}
			field.Options = append(field.Options, schema.Option{
				Value: value,
				Label: value,
			})
		}
		if len(field.Options) == 0 {
			return schema.FieldDescriptor{}, false
		}
	case prop.Format == "email":
		field.Type = schema.FieldTypeEmail
	case multiLine(prop):
		field.Type = schema.FieldTypeTextarea
	default:
		field.Type = schema.FieldTypeText
	}

	if !field.Type.IsChoice() {
		if example, ok := prop.Example.(string); ok {
			field.Placeholder = example
		}
	}
	if field.Type == schema.FieldTypeText || field.Type == schema.FieldTypeEmail {
		if prop.Pattern != "" {
			field.Validation = &schema.Validation{Pattern: prop.Pattern}
			if err := field.Validation.Compile(); err != nil {
				return schema.FieldDescriptor{}, false
			}
		}
	}

	return field, true
}

// multiLine reports whether a string property carries a long-text hint:
// the x-multiline vendor extension or a textarea/multiline format value.
func multiLine(prop *openapi3.Schema) bool {
	switch prop.Format {
	case "textarea", "multiline":
		return true
	}
	flag, ok := prop.Extensions["x-multiline"].(bool)
	return ok && flag
}

func labelFor(name string, prop *openapi3.Schema) string {
	if prop.Title != "" {
		return prop.Title
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	if cleaned == "" {
		return name
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}
