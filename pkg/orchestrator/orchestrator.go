// Package orchestrator coordinates the full pipeline from raw form document
// to rendered output: load, parse, theme resolution, render.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynaform/internal/schemaloader"
	"github.com/goliatone/go-dynaform/pkg/fields"
	"github.com/goliatone/go-dynaform/pkg/render"
	"github.com/goliatone/go-dynaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-dynaform/pkg/schema"
	"github.com/goliatone/go-dynaform/pkg/session"
	"github.com/goliatone/go-dynaform/pkg/validation"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithFieldRegistry injects the field behavior registry used to vet parsed
// forms and to build validation engines.
func WithFieldRegistry(registry *fields.Registry) Option {
	return func(o *Orchestrator) {
		o.fields = registry
	}
}

// WithEngine injects a custom validation engine for sessions created through
// the orchestrator.
func WithEngine(engine *validation.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithThemeSelector wires a go-theme selector so theme/variant choices are
// resolved into renderer configuration ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithDefaultTheme sets the theme and variant used when a request does not
// name one.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// Orchestrator applies sensible defaults (vanilla renderer, file loader)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	loader          schema.Loader
	registry        *render.Registry
	fields          *fields.Registry
	engine          *validation.Engine
	themes          theme.ThemeSelector
	defaultRenderer string
	defaultTheme    string
	defaultVariant  string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a form document.
type Request struct {
	// Source identifies where the form document lives. Optional when
	// Document is supplied.
	Source schema.Source

	// Document allows callers to bypass the loader when they already have a
	// raw payload.
	Document *schema.Document

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is
	// configured. Empty values fall back to the configured defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request instructions such as prefilled
	// values or validation errors that renderers can surface.
	RenderOptions render.Options
}

// Generate executes the loader, parser, and renderer sequence and returns the
// rendered bytes (HTML for the default vanilla renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Parse(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		cfg, err := o.themeFor(req)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := renderer.Render(ctx, *form, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Parse resolves and parses the requested document, vetting every field type
// against the configured behavior registry.
func (o *Orchestrator) Parse(ctx context.Context, req Request) (*schema.FormSchema, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	form, err := schema.Parse(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse document: %w", err)
	}

	for _, field := range form.Fields {
		if !o.fields.Has(field.Type) {
			return nil, fmt.Errorf("orchestrator: field %q uses unregistered type %q", field.ID, field.Type)
		}
	}
	return form, nil
}

// NewSession creates a fill session bound to the parsed form, using the
// orchestrator's validation engine.
func (o *Orchestrator) NewSession(form schema.FormSchema) *session.Session {
	return session.New(form, session.WithEngine(o.engine))
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = schemaloader.New(schema.NewLoaderOptions())
	}
	if o.fields == nil {
		o.fields = fields.NewRegistry()
	}
	if o.engine == nil {
		o.engine = validation.NewEngine(o.fields)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
