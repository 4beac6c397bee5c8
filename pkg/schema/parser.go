package schema

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// rawField keeps required keys as pointers so absence is distinguishable from
// the zero value. Unknown keys are tolerated; the closed-set checks below are
// the contract.
type rawField struct {
	ID          *string     `json:"id"`
	Type        *string     `json:"type"`
	Label       *string     `json:"label"`
	Required    bool        `json:"required"`
	Placeholder string      `json:"placeholder"`
	Options     []Option    `json:"options"`
	Validation  *Validation `json:"validation"`
}

type rawSchema struct {
	FormTitle       string      `json:"formTitle"`
	FormDescription string      `json:"formDescription"`
	Fields          *[]rawField `json:"fields"`
}

// Parse turns an untrusted document into a validated FormSchema. It is a pure
// transform: the input is never retained and failures come back as a
// *SyntaxError or *SchemaError value, never a panic.
func Parse(raw []byte) (*FormSchema, error) {
	var doc rawSchema
	decoder := json.NewDecoder(bytes.NewReader(raw))
	if err := decoder.Decode(&doc); err != nil {
		return nil, &SyntaxError{err: err}
	}
	out, err := buildSchema(doc)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseYAML accepts the same document shape authored as YAML. The payload is
// transcoded to JSON so both entry points share one set of checks.
func ParseYAML(raw []byte) (*FormSchema, error) {
	var node any
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, &SyntaxError{err: err}
	}
	payload, err := json.Marshal(normalizeYAML(node))
	if err != nil {
		return nil, &SyntaxError{err: err}
	}
	return Parse(payload)
}

func buildSchema(doc rawSchema) (FormSchema, error) {
	if doc.Fields == nil {
		return FormSchema{}, missingField("", "fields")
	}

	out := FormSchema{
		Title:       doc.FormTitle,
		Description: doc.FormDescription,
		Fields:      make([]FieldDescriptor, 0, len(*doc.Fields)),
	}

	seen := make(map[string]struct{}, len(*doc.Fields))
	for _, raw := range *doc.Fields {
		field, err := buildField(raw)
		if err != nil {
			return FormSchema{}, err
		}
		if _, dup := seen[field.ID]; dup {
			return FormSchema{}, &SchemaError{Kind: ErrDuplicateID, FieldID: field.ID}
		}
		seen[field.ID] = struct{}{}
		out.Fields = append(out.Fields, field)
	}

	return out, nil
}

func buildField(raw rawField) (FieldDescriptor, error) {
	id := ""
	if raw.ID != nil {
		id = *raw.ID
	}
	if id == "" {
		return FieldDescriptor{}, missingField("", "id")
	}
	if raw.Type == nil || *raw.Type == "" {
		return FieldDescriptor{}, missingField(id, "type")
	}
	if raw.Label == nil || *raw.Label == "" {
		return FieldDescriptor{}, missingField(id, "label")
	}

	fieldType := FieldType(*raw.Type)
	if !KnownFieldType(fieldType) {
		return FieldDescriptor{}, &SchemaError{Kind: ErrUnknownFieldType, Name: *raw.Type, FieldID: id}
	}

	field := FieldDescriptor{
		ID:       id,
		Type:     fieldType,
		Label:    *raw.Label,
		Required: raw.Required,
	}

	if fieldType.IsChoice() {
		if len(raw.Options) == 0 {
			return FieldDescriptor{}, &SchemaError{Kind: ErrMissingOptions, FieldID: id}
		}
		field.Options = append([]Option(nil), raw.Options...)
	} else {
		// Options are forbidden outside select/radio; drop them silently the
		// way placeholder and validation are dropped where they do not apply.
		field.Placeholder = raw.Placeholder
	}

	if raw.Validation != nil && (fieldType == FieldTypeText || fieldType == FieldTypeEmail) {
		validation := &Validation{
			Pattern: raw.Validation.Pattern,
			Message: raw.Validation.Message,
		}
		if err := validation.Compile(); err != nil {
			return FieldDescriptor{}, &SchemaError{Kind: ErrInvalidPattern, FieldID: id, err: err}
		}
		if validation.Pattern != "" || validation.Message != "" {
			field.Validation = validation
		}
	}

	return field, nil
}

// normalizeYAML rewrites yaml.v3 map keys into the string-keyed maps
// encoding/json expects.
func normalizeYAML(node any) any {
	switch typed := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = normalizeYAML(value)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			name, ok := key.(string)
			if !ok {
				continue
			}
			out[name] = normalizeYAML(value)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = normalizeYAML(value)
		}
		return out
	default:
		return typed
	}
}
