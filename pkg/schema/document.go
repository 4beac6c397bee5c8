package schema

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// Document wraps the raw form payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Loader fetches a form document from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures the built-in loader implementation.
type LoaderOptions struct {
	// FileSystem backs fs sources. Required when fs sources are used.
	FileSystem fs.FS
	// HTTPClient overrides the client used for url sources.
	HTTPClient *http.Client
	// AllowHTTP enables loading url sources. Disabled by default so untrusted
	// schema references cannot trigger network fetches unless the caller opts
	// in.
	AllowHTTP bool
	// RequestTimeout bounds url fetches when no custom client is supplied.
	RequestTimeout time.Duration
}

// NewLoaderOptions returns options with the default request timeout applied.
func NewLoaderOptions() LoaderOptions {
	return LoaderOptions{RequestTimeout: 15 * time.Second}
}
