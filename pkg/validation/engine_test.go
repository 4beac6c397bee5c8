package validation_test

import (
	"testing"

	"github.com/goliatone/go-dynaform/pkg/schema"
	"github.com/goliatone/go-dynaform/pkg/validation"
)

func textField(id, label string, required bool, pattern, message string) schema.FieldDescriptor {
	field := schema.FieldDescriptor{
		ID:       id,
		Type:     schema.FieldTypeText,
		Label:    label,
		Required: required,
	}
	if pattern != "" || message != "" {
		field.Validation = &schema.Validation{Pattern: pattern, Message: message}
	}
	return field
}

func TestValidate_Required(t *testing.T) {
	engine := validation.NewEngine(nil)

	result := engine.Validate(textField("name", "Name", true, "", ""), "")
	if result.OK() {
		t.Fatal("expected failure for empty required field")
	}
	if got := result.Message(); got != "Name is required" {
		t.Fatalf("unexpected message: %q", got)
	}

	if result := engine.Validate(textField("name", "Name", true, "", ""), "Ada"); !result.OK() {
		t.Fatalf("expected pass, got %q", result.Message())
	}
}

func TestValidate_RequiredCustomMessage(t *testing.T) {
	engine := validation.NewEngine(nil)
	field := textField("name", "Name", true, "", "Please tell us your name")

	result := engine.Validate(field, "")
	if result.OK() || result.Message() != "Please tell us your name" {
		t.Fatalf("custom message not used: %q", result.Message())
	}
}

func TestValidate_OptionalEmptyWithPatternPasses(t *testing.T) {
	engine := validation.NewEngine(nil)
	field := textField("code", "Code", false, "[0-9]{3}", "")

	if result := engine.Validate(field, ""); !result.OK() {
		t.Fatalf("empty optional value must pass: %q", result.Message())
	}
}

func TestValidate_PatternFullMatch(t *testing.T) {
	engine := validation.NewEngine(nil)
	field := textField("code", "Code", false, "[0-9]{3}", "")

	if result := engine.Validate(field, "123"); !result.OK() {
		t.Fatalf("full match must pass: %q", result.Message())
	}
	if result := engine.Validate(field, "a123b"); result.OK() {
		t.Fatal("substring match must fail")
	}
	if result := engine.Validate(field, "12"); result.OK() {
		t.Fatal("partial value must fail")
	}
}

func TestValidate_EmailBuiltin(t *testing.T) {
	engine := validation.NewEngine(nil)
	field := schema.FieldDescriptor{ID: "em", Type: schema.FieldTypeEmail, Label: "Email"}

	if result := engine.Validate(field, "a@b.co"); !result.OK() {
		t.Fatalf("valid address rejected: %q", result.Message())
	}
	result := engine.Validate(field, "not-an-email")
	if result.OK() {
		t.Fatal("invalid address accepted")
	}
	if got := result.Message(); got != "Email is not valid" {
		t.Fatalf("unexpected message: %q", got)
	}
	if result := engine.Validate(field, ""); !result.OK() {
		t.Fatal("empty optional email must pass")
	}
}

func TestValidate_EmailWithPattern(t *testing.T) {
	engine := validation.NewEngine(nil)
	field := schema.FieldDescriptor{
		ID:    "em",
		Type:  schema.FieldTypeEmail,
		Label: "Email",
		Validation: &schema.Validation{
			Pattern: `^.+@.+\..+$`,
		},
	}

	if result := engine.Validate(field, "a@b.co"); !result.OK() {
		t.Fatalf("expected pass: %q", result.Message())
	}
	if result := engine.Validate(field, "not-an-email"); result.OK() {
		t.Fatal("expected failure")
	}
}

func TestValidate_BuiltinRunsBeforePattern(t *testing.T) {
	engine := validation.NewEngine(nil)
	// Pattern alone would accept this value; the email built-in must reject
	// it first.
	field := schema.FieldDescriptor{
		ID:    "em",
		Type:  schema.FieldTypeEmail,
		Label: "Email",
		Validation: &schema.Validation{
			Pattern: `.*`,
			Message: "Address looks wrong",
		},
	}

	result := engine.Validate(field, "plainstring")
	if result.OK() {
		t.Fatal("built-in check must run for email fields")
	}
	if got := result.Message(); got != "Address looks wrong" {
		t.Fatalf("custom message not used: %q", got)
	}
}

func TestValidate_ChoiceFields(t *testing.T) {
	engine := validation.NewEngine(nil)
	field := schema.FieldDescriptor{
		ID:       "plan",
		Type:     schema.FieldTypeSelect,
		Label:    "Plan",
		Required: true,
		Options: []schema.Option{
			{Value: "free", Label: "Free"},
		},
	}

	if result := engine.Validate(field, ""); result.OK() {
		t.Fatal("unselected required choice must fail")
	}
	if result := engine.Validate(field, "free"); !result.OK() {
		t.Fatalf("selected choice must pass: %q", result.Message())
	}
}
