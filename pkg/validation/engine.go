// Package validation evaluates field values against declared rules. Every
// check is a pure function of the descriptor and the current value, so results
// can be recomputed per keystroke or merged from parallel sweeps without
// shared state.
package validation

import (
	"github.com/goliatone/go-dynaform/pkg/fields"
	"github.com/goliatone/go-dynaform/pkg/schema"
)

// Result reports a single validation outcome: Ok, or a failure carrying the
// human-readable message to display next to the field.
type Result struct {
	ok      bool
	message string
}

// Ok returns a passing result.
func Ok() Result {
	return Result{ok: true}
}

// Fail returns a failing result with the supplied message.
func Fail(message string) Result {
	return Result{message: message}
}

// OK reports whether the check passed.
func (r Result) OK() bool {
	return r.ok
}

// Message returns the failure message, empty when the check passed.
func (r Result) Message() string {
	return r.message
}

// Engine evaluates fields against their behavior's built-in checks and the
// user-declared validation block. Engines are stateless and safe for
// concurrent use.
type Engine struct {
	registry *fields.Registry
}

// NewEngine constructs an engine over the supplied registry. Passing nil uses
// a registry with the built-in types.
func NewEngine(registry *fields.Registry) *Engine {
	if registry == nil {
		registry = fields.NewRegistry()
	}
	return &Engine{registry: registry}
}

// Validate checks raw against the field's rules, short-circuiting on the
// first failure:
//
//  1. required and empty/unselected
//  2. the type's built-in check (email shape)
//  3. the user-declared pattern, full-match
//
// Required-ness and pattern checks are independent axes: an empty optional
// value passes even when a pattern is declared, because patterns apply only to
// non-empty values.
func (e *Engine) Validate(field schema.FieldDescriptor, raw string) Result {
	custom := ""
	if field.Validation != nil {
		custom = field.Validation.Message
	}

	if raw == "" {
		if field.Required {
			return Fail(messageOr(custom, field.Label+" is required"))
		}
		return Ok()
	}

	behavior, ok := e.registry.Behavior(field.Type)
	if !ok {
		return Fail(field.Label + " has an unsupported type")
	}

	if behavior.Builtin != nil && !behavior.Builtin(raw) {
		return Fail(messageOr(custom, field.Label+" is not valid"))
	}

	if behavior.AllowsPattern && field.Validation != nil {
		matched, err := field.Validation.Match(raw)
		if err != nil {
			// Parse compiles patterns up front; reaching this means the
			// descriptor was built by hand with a broken expression.
			return Fail(field.Label + " has an invalid pattern")
		}
		if !matched {
			return Fail(messageOr(custom, field.Label+" is not valid"))
		}
	}

	return Ok()
}

func messageOr(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}
