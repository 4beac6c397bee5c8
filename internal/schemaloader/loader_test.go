package schemaloader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-dynaform/internal/schemaloader"
	"github.com/goliatone/go-dynaform/pkg/schema"
)

const sampleForm = `{"formTitle":"T","formDescription":"D","fields":[]}`

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.json")
	if err := os.WriteFile(path, []byte(sampleForm), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := schemaloader.New(schema.NewLoaderOptions())
	doc, err := loader.Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != sampleForm {
		t.Fatalf("payload mismatch: %s", doc.Raw())
	}
}

func TestLoader_FS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/signup.json": &fstest.MapFile{Data: []byte(sampleForm)},
	}
	options := schema.NewLoaderOptions()
	options.FileSystem = fsys

	loader := schemaloader.New(options)
	doc, err := loader.Load(context.Background(), schema.SourceFromFS("forms/signup.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Location() != "forms/signup.json" {
		t.Fatalf("location mismatch: %s", doc.Location())
	}
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	loader := schemaloader.New(schema.NewLoaderOptions())
	_, err := loader.Load(context.Background(), schema.SourceFromURL("http://example.com/form.json"))
	if err == nil {
		t.Fatal("expected http loading to be disabled")
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleForm))
	}))
	defer server.Close()

	options := schema.NewLoaderOptions()
	options.AllowHTTP = true

	loader := schemaloader.New(options)
	doc, err := loader.Load(context.Background(), schema.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != sampleForm {
		t.Fatalf("payload mismatch: %s", doc.Raw())
	}
}
