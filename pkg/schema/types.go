package schema

import "regexp"

// FieldType enumerates the closed set of input controls a form may declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeTextarea FieldType = "textarea"
)

// KnownFieldType reports whether t belongs to the closed set.
func KnownFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeSelect, FieldTypeRadio, FieldTypeTextarea:
		return true
	default:
		return false
	}
}

// IsChoice reports whether the type renders from an options list.
func (t FieldType) IsChoice() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio
}

// Option is a single selectable entry for select/radio fields.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Validation declares a user-authored constraint for text/email fields. The
// pattern, when present, must compile; Parse rejects documents where it does
// not. Matching is always against the full value, not a substring.
type Validation struct {
	Pattern string `json:"pattern,omitempty"`
	Message string `json:"message,omitempty"`

	re *regexp.Regexp
}

// Compile builds the anchored expression for Pattern. Safe to call more than
// once; subsequent calls are no-ops when the pattern already compiled.
func (v *Validation) Compile() error {
	if v == nil || v.Pattern == "" || v.re != nil {
		return nil
	}
	re, err := compileFullMatch(v.Pattern)
	if err != nil {
		return err
	}
	v.re = re
	return nil
}

// Match reports whether value fully matches the declared pattern. Fields
// without a pattern match everything. Descriptors built by hand (rather than
// by Parse) compile lazily without mutating v, so Match stays safe for
// concurrent callers.
func (v *Validation) Match(value string) (bool, error) {
	if v == nil || v.Pattern == "" {
		return true, nil
	}
	re := v.re
	if re == nil {
		var err error
		re, err = compileFullMatch(v.Pattern)
		if err != nil {
			return false, err
		}
	}
	return re.MatchString(value), nil
}

func compileFullMatch(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + pattern + `)\z`)
}

// FieldDescriptor is the typed specification of one input control and its
// validation rules.
type FieldDescriptor struct {
	ID          string      `json:"id"`
	Type        FieldType   `json:"type"`
	Label       string      `json:"label"`
	Required    bool        `json:"required,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
	Options     []Option    `json:"options,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
}

// FormSchema is the parsed, validated representation of a form. Field order is
// rendering order and is preserved exactly as authored. A FormSchema is
// immutable after Parse returns; no component may mutate it.
type FormSchema struct {
	Title       string            `json:"formTitle"`
	Description string            `json:"formDescription"`
	Fields      []FieldDescriptor `json:"fields"`
}

// Field looks up a descriptor by id.
func (s FormSchema) Field(id string) (FieldDescriptor, bool) {
	for _, field := range s.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// FieldIDs returns the ids in rendering order.
func (s FormSchema) FieldIDs() []string {
	if len(s.Fields) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		ids = append(ids, field.ID)
	}
	return ids
}
