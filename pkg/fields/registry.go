package fields

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-dynaform/pkg/schema"
)

// Registry stores field behaviors by type, providing discovery and
// duplication safeguards. The zero value is unusable; construct with
// NewRegistry, which seeds the built-in types.
type Registry struct {
	mu      sync.RWMutex
	entries map[schema.FieldType]Behavior
}

// NewRegistry creates a registry populated with the built-in field types.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[schema.FieldType]Behavior)}
	r.registerBuiltins()
	return r
}

// Register adds a behavior for a new field type. Registering an existing type
// returns an error so built-ins cannot be shadowed accidentally.
func (r *Registry) Register(t schema.FieldType, behavior Behavior) error {
	if t == "" {
		return fmt.Errorf("fields: field type is required")
	}
	if behavior.Control == "" {
		return fmt.Errorf("fields: control kind is required for %q", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[t]; exists {
		return fmt.Errorf("fields: type %q already registered", t)
	}

	r.entries[t] = behavior
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(t schema.FieldType, behavior Behavior) {
	if err := r.Register(t, behavior); err != nil {
		panic(err)
	}
}

// Behavior retrieves the behavior for a field type.
func (r *Registry) Behavior(t schema.FieldType) (Behavior, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	behavior, ok := r.entries[t]
	return behavior, ok
}

// Has reports whether a type is registered.
func (r *Registry) Has(t schema.FieldType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[t]
	return ok
}

// Types returns the registered type tags in sorted order.
func (r *Registry) Types() []schema.FieldType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]schema.FieldType, 0, len(r.entries))
	for t := range r.entries {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (r *Registry) registerBuiltins() {
	r.entries[schema.FieldTypeText] = Behavior{
		Control:            ControlInput,
		InputType:          "text",
		AcceptsPlaceholder: true,
		AllowsPattern:      true,
	}
	r.entries[schema.FieldTypeEmail] = Behavior{
		Control:            ControlInput,
		InputType:          "email",
		AcceptsPlaceholder: true,
		AllowsPattern:      true,
		Builtin:            ValidEmailShape,
	}
	r.entries[schema.FieldTypeSelect] = Behavior{
		Control:         ControlDropdown,
		RequiresOptions: true,
	}
	r.entries[schema.FieldTypeRadio] = Behavior{
		Control:         ControlButtonGroup,
		RequiresOptions: true,
	}
	r.entries[schema.FieldTypeTextarea] = Behavior{
		Control:            ControlTextarea,
		AcceptsPlaceholder: true,
	}
}
