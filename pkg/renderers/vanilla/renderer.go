package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-dynaform/pkg/render"
	"github.com/goliatone/go-dynaform/pkg/schema"
)

type Option func(*config)

type config struct {
	templateFS fs.FS
	policy     *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithSanitizerPolicy overrides the policy applied to form descriptions.
func WithSanitizerPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer emits a standalone HTML page for a form. Field controls are built
// in Go; the page shell comes from a pongo2 template so callers can swap the
// chrome without touching control markup.
type Renderer struct {
	page   *pongo2.Template
	policy *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		policy:     bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	set := pongo2.NewSet("dynaform", pongo2.NewFSLoader(cfg.templateFS))
	page, err := set.FromFile("templates/form.html.tpl")
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: load page template: %w", err)
	}

	return &Renderer{page: page, policy: cfg.policy}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, form schema.FormSchema, options render.Options) ([]byte, error) {
	if r.page == nil {
		return nil, fmt.Errorf("vanilla renderer: page template is nil")
	}

	var controls strings.Builder
	for _, field := range form.Fields {
		controls.WriteString(buildFieldMarkup(field, options))
		controls.WriteByte('\n')
	}

	out, err := r.page.Execute(pongo2.Context{
		"title":       form.Title,
		"description": pongo2.AsSafeValue(r.policy.Sanitize(form.Description)),
		"fields":      pongo2.AsSafeValue(controls.String()),
		"css_vars":    pongo2.AsSafeValue(cssVarBlock(options)),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(out), nil
}

func cssVarBlock(options render.Options) string {
	if options.Theme == nil || len(options.Theme.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(options.Theme.CSSVars))
	for name := range options.Theme.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(options.Theme.CSSVars[name])
		builder.WriteString(";\n")
	}
	return builder.String()
}
