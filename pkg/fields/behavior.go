// Package fields maps each supported field type to its rendering and
// validation behavior. The registry is a closed lookup table: adding a type
// means adding one entry here plus its control markup, never a plugin
// mechanism.
package fields

import "regexp"

// ControlKind names the concrete control a renderer should emit for a field.
type ControlKind string

const (
	// ControlInput is a single-line text input.
	ControlInput ControlKind = "input"
	// ControlTextarea is a multi-line text input.
	ControlTextarea ControlKind = "textarea"
	// ControlDropdown is a single-choice dropdown.
	ControlDropdown ControlKind = "dropdown"
	// ControlButtonGroup is a single-choice radio button group.
	ControlButtonGroup ControlKind = "button-group"
)

// Behavior specifies how a field type renders and which checks apply to it.
// Built-in validators run before any user-declared pattern.
type Behavior struct {
	// Control selects the markup/prompt shape.
	Control ControlKind
	// InputType is the HTML input type for ControlInput behaviors.
	InputType string
	// AcceptsPlaceholder reports whether placeholder text applies.
	AcceptsPlaceholder bool
	// RequiresOptions reports whether a non-empty options list is mandatory.
	RequiresOptions bool
	// AllowsPattern reports whether user-declared validation patterns apply.
	AllowsPattern bool
	// Builtin validates a non-empty value before user-declared rules run.
	// Nil when the type has no built-in check.
	Builtin func(value string) bool
}

// emailShape is the built-in address check for email fields: one @ with a
// dotted domain, no whitespace. Deliberately loose; authors tighten it with
// validation.pattern when they need more.
var emailShape = regexp.MustCompile(`\A[^\s@]+@[^\s@]+\.[^\s@]+\z`)

// ValidEmailShape reports whether value looks like an email address.
func ValidEmailShape(value string) bool {
	return emailShape.MatchString(value)
}
