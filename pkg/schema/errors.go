package schema

import "fmt"

// SyntaxError reports a document that is not well-formed JSON (or YAML). The
// caller decides how to surface it; nothing is rendered from a broken
// document.
type SyntaxError struct {
	err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("schema: invalid document: %v", e.err)
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

// ErrorKind discriminates the semantic schema failures Parse can return.
type ErrorKind string

const (
	// ErrMissingField means a required key (fields, id, type, label) is absent.
	ErrMissingField ErrorKind = "missing_field"
	// ErrUnknownFieldType means the type tag is outside the closed set.
	ErrUnknownFieldType ErrorKind = "unknown_field_type"
	// ErrInvalidPattern means validation.pattern does not compile.
	ErrInvalidPattern ErrorKind = "invalid_pattern"
	// ErrMissingOptions means a select/radio field has no options.
	ErrMissingOptions ErrorKind = "missing_options"
	// ErrDuplicateID means two fields share an id.
	ErrDuplicateID ErrorKind = "duplicate_id"
)

// SchemaError reports a syntactically valid document that fails the semantic
// checks. Name carries the missing key or offending type tag; FieldID names
// the field when the failure is scoped to one.
type SchemaError struct {
	Kind    ErrorKind
	Name    string
	FieldID string
	err     error
}

func (e *SchemaError) Error() string {
	switch e.Kind {
	case ErrMissingField:
		if e.FieldID != "" {
			return fmt.Sprintf("schema: field %q: missing %q", e.FieldID, e.Name)
		}
		return fmt.Sprintf("schema: missing %q", e.Name)
	case ErrUnknownFieldType:
		return fmt.Sprintf("schema: field %q: unknown type %q", e.FieldID, e.Name)
	case ErrInvalidPattern:
		return fmt.Sprintf("schema: field %q: invalid pattern: %v", e.FieldID, e.err)
	case ErrMissingOptions:
		return fmt.Sprintf("schema: field %q: options are required and must be non-empty", e.FieldID)
	case ErrDuplicateID:
		return fmt.Sprintf("schema: duplicate field id %q", e.FieldID)
	default:
		return fmt.Sprintf("schema: invalid document (%s)", e.Kind)
	}
}

func (e *SchemaError) Unwrap() error {
	return e.err
}

func missingField(fieldID, name string) *SchemaError {
	return &SchemaError{Kind: ErrMissingField, Name: name, FieldID: fieldID}
}
