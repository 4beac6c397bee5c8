package render

import (
	"context"

	"github.com/goliatone/go-dynaform/pkg/schema"
)

// Renderer converts a parsed form into a byte representation (HTML,
// terminal output, etc.). Renderers must not mutate the form.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.FormSchema, options Options) ([]byte, error)
}
