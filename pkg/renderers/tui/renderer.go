package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-dynaform/pkg/render"
	"github.com/goliatone/go-dynaform/pkg/schema"
	"github.com/goliatone/go-dynaform/pkg/session"
)

// noneChoice lets optional choice fields stay unanswered.
const noneChoice = "(none)"

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithSessionOptions forwards options to the fill session, e.g. a custom
// validation engine or deterministic clock.
func WithSessionOptions(options ...session.Option) Option {
	return func(r *Renderer) {
		r.sessionOptions = append(r.sessionOptions, options...)
	}
}

// Renderer walks a form field by field in the terminal, re-prompting on
// validation failures, and returns the submission record as JSON.
type Renderer struct {
	driver         PromptDriver
	sessionOptions []session.Option
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the survey-backed driver by default.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render runs the interactive fill loop and serializes the resulting
// submission record. Prefilled values from opts.Values become prompt
// defaults.
func (r *Renderer) Render(ctx context.Context, form schema.FormSchema, opts render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess := session.New(form, r.sessionOptions...)

	if form.Title != "" {
		if err := r.driver.Info(ctx, form.Title); err != nil {
			return nil, err
		}
	}
	if form.Description != "" {
		if err := r.driver.Info(ctx, form.Description); err != nil {
			return nil, err
		}
	}

	for _, field := range form.Fields {
		if err := r.promptField(ctx, sess, field, opts.Values[field.ID]); err != nil {
			return nil, err
		}
	}

	record, err := sess.Submit()
	if err != nil {
		return nil, fmt.Errorf("tui: submit: %w", err)
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: serialize record: %w", err)
	}
	return out, nil
}

func (r *Renderer) promptField(ctx context.Context, sess *session.Session, field schema.FieldDescriptor, initial string) error {
	for {
		value, err := r.askOnce(ctx, field, initial)
		if err != nil {
			return err
		}

		if err := sess.SetValue(field.ID, value); err != nil {
			return fmt.Errorf("tui: set %q: %w", field.ID, err)
		}
		msg, failed := sess.Error(field.ID)
		if !failed {
			return nil
		}
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
		initial = value
	}
}

func (r *Renderer) askOnce(ctx context.Context, field schema.FieldDescriptor, initial string) (string, error) {
	switch {
	case field.Type.IsChoice():
		return r.askChoice(ctx, field, initial)
	case field.Type == schema.FieldTypeTextarea:
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: initial,
		})
	default:
		return r.driver.Input(ctx, InputConfig{
			Message:     field.Label,
			Default:     initial,
			Help:        field.Placeholder,
			Placeholder: field.Placeholder,
		})
	}
}

func (r *Renderer) askChoice(ctx context.Context, field schema.FieldDescriptor, initial string) (string, error) {
	labels := make([]string, 0, len(field.Options)+1)
	values := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		labels = append(labels, noneChoice)
		values = append(values, "")
	}
	defaultIndex := 0
	for _, option := range field.Options {
		if option.Value == initial && initial != "" {
			defaultIndex = len(labels)
		}
		labels = append(labels, option.Label)
		values = append(values, option.Value)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", fmt.Errorf("tui: choice index %d out of range for %q", idx, field.ID)
	}
	return values[idx], nil
}
