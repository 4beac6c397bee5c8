package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed form.schema.json
var metaSchemaJSON []byte

const metaSchemaName = "form.schema.json"

var (
	metaOnce     sync.Once
	metaCompiled *jsonschema.Schema
	metaErr      error
)

func metaSchema() (*jsonschema.Schema, error) {
	metaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(metaSchemaName, bytes.NewReader(metaSchemaJSON)); err != nil {
			metaErr = fmt.Errorf("schema: add meta schema: %w", err)
			return
		}
		metaCompiled, metaErr = compiler.Compile(metaSchemaName)
	})
	return metaCompiled, metaErr
}

// Issue is a structural diagnostic with optional location metadata, suitable
// for per-field display to schema authors.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// CheckResult captures document diagnostics for preview surfaces.
type CheckResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// CheckDocument validates a raw document against the embedded structural
// schema, returning every issue at once rather than the first failure. Parse
// remains authoritative; CheckDocument exists so authoring tools can show a
// structured diagnostic list instead of one generic message.
func CheckDocument(raw []byte) CheckResult {
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return CheckResult{Issues: []Issue{{Message: "Invalid JSON. Please correct it."}}}
	}

	meta, err := metaSchema()
	if err != nil {
		return CheckResult{Issues: []Issue{{Message: err.Error()}}}
	}

	if err := meta.Validate(instance); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return CheckResult{Issues: flattenIssues(validationErr)}
		}
		return CheckResult{Issues: []Issue{{Message: err.Error()}}}
	}

	return CheckResult{Valid: true}
}

func flattenIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	if len(err.Causes) == 0 {
		return []Issue{{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		}}
	}
	var out []Issue
	for _, cause := range err.Causes {
		out = append(out, flattenIssues(cause)...)
	}
	return out
}

func pointerToPath(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(pointer), "/")
	if trimmed == "" {
		return ""
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}
