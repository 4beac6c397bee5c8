package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-dynaform/pkg/schema"
)

func TestParse_BasicForm(t *testing.T) {
	raw := []byte(`{
  "formTitle": "Signup",
  "formDescription": "Tell us about yourself",
  "fields": [
    {"id": "name", "type": "text", "label": "Name", "required": true, "placeholder": "Ada"},
    {"id": "em", "type": "email", "label": "Email", "validation": {"pattern": "^.+@.+\\..+$"}},
    {"id": "plan", "type": "select", "label": "Plan", "options": [
      {"value": "free", "label": "Free"},
      {"value": "pro", "label": "Pro"}
    ]},
    {"id": "bio", "type": "textarea", "label": "Bio", "placeholder": "A few words"}
  ]
}`)

	form, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := schema.FormSchema{
		Title:       "Signup",
		Description: "Tell us about yourself",
		Fields: []schema.FieldDescriptor{
			{ID: "name", Type: schema.FieldTypeText, Label: "Name", Required: true, Placeholder: "Ada"},
			{ID: "em", Type: schema.FieldTypeEmail, Label: "Email", Validation: &schema.Validation{Pattern: `^.+@.+\..+$`}},
			{ID: "plan", Type: schema.FieldTypeSelect, Label: "Plan", Options: []schema.Option{
				{Value: "free", Label: "Free"},
				{Value: "pro", Label: "Pro"},
			}},
			{ID: "bio", Type: schema.FieldTypeTextarea, Label: "Bio", Placeholder: "A few words"},
		},
	}
	if diff := cmp.Diff(want, *form, cmpopts.IgnoreUnexported(schema.Validation{})); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	raw := []byte(`{"formTitle":"T","formDescription":"D","fields":[
    {"id":"c","type":"text","label":"C"},
    {"id":"a","type":"text","label":"A"},
    {"id":"b","type":"text","label":"B"}
  ]}`)

	form, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"c", "a", "b"}
	if diff := cmp.Diff(want, form.FieldIDs()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyFieldsIsValid(t *testing.T) {
	form, err := schema.Parse([]byte(`{"formTitle":"T","formDescription":"D","fields":[]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(form.Fields) != 0 {
		t.Fatalf("expected no fields, got %d", len(form.Fields))
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	_, err := schema.Parse([]byte(`{not json`))
	var syntaxErr *schema.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		kind    schema.ErrorKind
		fieldID string
	}{
		{
			name: "missing fields key",
			raw:  `{"formTitle":"T","formDescription":"D"}`,
			kind: schema.ErrMissingField,
		},
		{
			name: "missing id",
			raw:  `{"fields":[{"type":"text","label":"Name"}]}`,
			kind: schema.ErrMissingField,
		},
		{
			name:    "missing type",
			raw:     `{"fields":[{"id":"name","label":"Name"}]}`,
			kind:    schema.ErrMissingField,
			fieldID: "name",
		},
		{
			name:    "missing label",
			raw:     `{"fields":[{"id":"name","type":"text"}]}`,
			kind:    schema.ErrMissingField,
			fieldID: "name",
		},
		{
			name:    "unknown type",
			raw:     `{"fields":[{"id":"f","type":"checkbox","label":"F"}]}`,
			kind:    schema.ErrUnknownFieldType,
			fieldID: "f",
		},
		{
			name:    "invalid pattern",
			raw:     `{"fields":[{"id":"f","type":"text","label":"F","validation":{"pattern":"("}}]}`,
			kind:    schema.ErrInvalidPattern,
			fieldID: "f",
		},
		{
			name:    "select without options",
			raw:     `{"fields":[{"id":"f","type":"select","label":"F","options":[]}]}`,
			kind:    schema.ErrMissingOptions,
			fieldID: "f",
		},
		{
			name:    "radio without options",
			raw:     `{"fields":[{"id":"f","type":"radio","label":"F"}]}`,
			kind:    schema.ErrMissingOptions,
			fieldID: "f",
		},
		{
			name:    "duplicate id",
			raw:     `{"fields":[{"id":"f","type":"text","label":"A"},{"id":"f","type":"text","label":"B"}]}`,
			kind:    schema.ErrDuplicateID,
			fieldID: "f",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.Parse([]byte(tc.raw))
			var schemaErr *schema.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %T: %v", err, err)
			}
			if schemaErr.Kind != tc.kind {
				t.Fatalf("kind mismatch: want %s, got %s", tc.kind, schemaErr.Kind)
			}
			if schemaErr.FieldID != tc.fieldID {
				t.Fatalf("field id mismatch: want %q, got %q", tc.fieldID, schemaErr.FieldID)
			}
		})
	}
}

func TestParse_DropsInapplicableKeys(t *testing.T) {
	raw := []byte(`{"fields":[
    {"id":"name","type":"text","label":"Name","options":[{"value":"x","label":"X"}]},
    {"id":"plan","type":"select","label":"Plan","placeholder":"pick one",
      "validation":{"pattern":".*"},
      "options":[{"value":"free","label":"Free"}]}
  ]}`)

	form, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	name, _ := form.Field("name")
	if name.Options != nil {
		t.Fatalf("options should be dropped for text fields, got %v", name.Options)
	}
	plan, _ := form.Field("plan")
	if plan.Placeholder != "" {
		t.Fatalf("placeholder should be dropped for select fields, got %q", plan.Placeholder)
	}
	if plan.Validation != nil {
		t.Fatalf("validation should be dropped for select fields, got %+v", plan.Validation)
	}
}

func TestParseYAML(t *testing.T) {
	raw := []byte(`
formTitle: Signup
formDescription: D
fields:
  - id: name
    type: text
    label: Name
    required: true
`)
	form, err := schema.ParseYAML(raw)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	field, ok := form.Field("name")
	if !ok || !field.Required || field.Type != schema.FieldTypeText {
		t.Fatalf("unexpected field: %+v (ok=%v)", field, ok)
	}
}

func TestValidation_FullMatchSemantics(t *testing.T) {
	form, err := schema.Parse([]byte(`{"fields":[
    {"id":"code","type":"text","label":"Code","validation":{"pattern":"[0-9]{3}"}}
  ]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	field, _ := form.Field("code")

	ok, err := field.Validation.Match("123")
	if err != nil || !ok {
		t.Fatalf("expected full match for 123: ok=%v err=%v", ok, err)
	}
	ok, err = field.Validation.Match("a123b")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if ok {
		t.Fatal("substring match must not pass")
	}
}
