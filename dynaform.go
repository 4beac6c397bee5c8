// Package dynaform turns declarative form documents into typed field
// descriptors, rendered forms, and validated submission records.
package dynaform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynaform/pkg/orchestrator"
	"github.com/goliatone/go-dynaform/pkg/render"
	"github.com/goliatone/go-dynaform/pkg/schema"
	"github.com/goliatone/go-dynaform/pkg/session"
)

// Options aliases render.Options for callers configuring prefills, errors, or
// theme configuration from the top-level package.
type Options = render.Options

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module for callers that want full control over the pipeline.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// ParseForm parses a raw form document into its schema.
func ParseForm(raw []byte) (*schema.FormSchema, error) {
	return schema.Parse(raw)
}

// NewSession creates a fill session for a parsed form using the default
// validation engine.
func NewSession(form schema.FormSchema) *session.Session {
	return session.New(form)
}

// GenerateHTML loads the document from source and renders it with the vanilla
// renderer. It is the simplest entry point for callers that just want HTML
// output.
func GenerateHTML(ctx context.Context, source schema.Source, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{Source: source})
}

// GenerateHTMLFromDocument renders a form using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc schema.Document, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{Document: &doc})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
