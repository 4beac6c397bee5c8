// Package session holds the live state of one rendered form: current values,
// per-field errors, and the submission record. A session's lifetime is bound
// to a single parsed schema; re-parsing discards the session and starts a new
// one with no carry-over.
package session

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/goliatone/go-dynaform/pkg/schema"
	"github.com/goliatone/go-dynaform/pkg/validation"
)

// Record is the submission record: the exact field-id to value mapping frozen
// at the moment a submit attempt fully passes, plus an identifier and
// timestamp for export bookkeeping.
type Record struct {
	ID          string            `json:"id"`
	SubmittedAt time.Time         `json:"submittedAt"`
	Values      map[string]string `json:"values"`
}

// ValidationFailed reports a submit attempt where one or more fields did not
// pass. Errors is keyed by field id.
type ValidationFailed struct {
	Errors map[string]string
}

func (e *ValidationFailed) Error() string {
	ids := make([]string, 0, len(e.Errors))
	for id := range e.Errors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return fmt.Sprintf("session: %d field(s) failed validation: %v", len(ids), ids)
}

// Option customises session construction.
type Option func(*Session)

// WithEngine injects the validation engine. Defaults to one over the built-in
// field registry.
func WithEngine(engine *validation.Engine) Option {
	return func(s *Session) {
		s.engine = engine
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithEntropy overrides the randomness used for record ids.
func WithEntropy(entropy io.Reader) Option {
	return func(s *Session) {
		s.entropy = entropy
	}
}

// Session owns the mutable state for one form instance. It is meant for a
// single logical owner (the event loop driving the form) and is not safe for
// concurrent mutation; the schema it references stays immutable and shared.
type Session struct {
	form    schema.FormSchema
	engine  *validation.Engine
	now     func() time.Time
	entropy io.Reader

	values    map[string]string
	errs      map[string]string
	submitted bool
	record    *Record
}

// New creates a fresh editing session for a parsed schema.
func New(form schema.FormSchema, options ...Option) *Session {
	s := &Session{
		form:   form,
		now:    time.Now,
		values: make(map[string]string),
		errs:   make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.engine == nil {
		s.engine = validation.NewEngine(nil)
	}
	return s
}

// Schema returns the immutable schema this session is bound to.
func (s *Session) Schema() schema.FormSchema {
	return s.form
}

// SetValue commits a value change for one field and recomputes that field's
// error. Values for ids outside the schema are rejected. Submission state is
// never affected; a frozen record stays frozen.
func (s *Session) SetValue(fieldID, raw string) error {
	field, ok := s.form.Field(fieldID)
	if !ok {
		return fmt.Errorf("session: unknown field %q", fieldID)
	}

	s.values[fieldID] = raw

	result := s.engine.Validate(field, raw)
	if result.OK() {
		delete(s.errs, fieldID)
	} else {
		s.errs[fieldID] = result.Message()
	}
	return nil
}

// Value returns the current raw value for a field.
func (s *Session) Value(fieldID string) (string, bool) {
	value, ok := s.values[fieldID]
	return value, ok
}

// Values returns a copy of the current value map.
func (s *Session) Values() map[string]string {
	return cloneMap(s.values)
}

// Error returns the current validation error for a field, if any.
func (s *Session) Error(fieldID string) (string, bool) {
	message, ok := s.errs[fieldID]
	return message, ok
}

// Errors returns a copy of the current error map.
func (s *Session) Errors() map[string]string {
	return cloneMap(s.errs)
}

// Submitted reports whether a submit attempt has fully passed.
func (s *Session) Submitted() bool {
	return s.submitted
}

// Record returns the frozen submission record. The second return is false
// until a submit attempt passes.
func (s *Session) Record() (Record, bool) {
	if s.record == nil {
		return Record{}, false
	}
	return copyRecord(*s.record), true
}

// Submit sweeps every schema field, not just touched ones, so never-edited
// required fields are caught. On a full pass the session freezes the record
// and reports submitted; afterwards Submit is idempotent and returns the same
// record. On any failure the accumulated errors are exposed via the returned
// *ValidationFailed and the Errors accessor.
func (s *Session) Submit() (Record, error) {
	if s.submitted {
		return copyRecord(*s.record), nil
	}

	failed := make(map[string]string)
	for _, field := range s.form.Fields {
		result := s.engine.Validate(field, s.values[field.ID])
		if result.OK() {
			delete(s.errs, field.ID)
			continue
		}
		s.errs[field.ID] = result.Message()
		failed[field.ID] = result.Message()
	}

	if len(failed) > 0 {
		return Record{}, &ValidationFailed{Errors: failed}
	}

	snapshot := make(map[string]string, len(s.form.Fields))
	for _, field := range s.form.Fields {
		snapshot[field.ID] = s.values[field.ID]
	}

	s.record = &Record{
		ID:          s.newRecordID(),
		SubmittedAt: s.now(),
		Values:      snapshot,
	}
	s.submitted = true
	return copyRecord(*s.record), nil
}

// Reset discards all session state and returns to the initial editing state.
func (s *Session) Reset() {
	s.values = make(map[string]string)
	s.errs = make(map[string]string)
	s.submitted = false
	s.record = nil
}

func (s *Session) newRecordID() string {
	timestamp := ulid.Timestamp(s.now())
	if s.entropy != nil {
		if id, err := ulid.New(timestamp, s.entropy); err == nil {
			return id.String()
		}
	}
	return ulid.Make().String()
}

func cloneMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func copyRecord(rec Record) Record {
	rec.Values = cloneMap(rec.Values)
	return rec
}
