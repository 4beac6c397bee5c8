// Package export serializes finished submission records. Exporters receive
// the record exactly as the session froze it and perform no further
// transformation beyond encoding.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goliatone/go-dynaform/pkg/session"
)

// DefaultFileName is used by FileExporter when no path is configured.
const DefaultFileName = "form_submission.json"

// Exporter delivers a submission record to some destination.
type Exporter interface {
	Export(ctx context.Context, record session.Record) error
}

// MarshalValues encodes just the field id to value mapping, two-space
// indented, matching what end users see when they copy a submission.
func MarshalValues(record session.Record) ([]byte, error) {
	values := record.Values
	if values == nil {
		values = map[string]string{}
	}
	out, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal values: %w", err)
	}
	return out, nil
}

// MarshalRecord encodes the full record envelope (id, timestamp, values).
func MarshalRecord(record session.Record) ([]byte, error) {
	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal record: %w", err)
	}
	return out, nil
}

// WriterExporter streams serialized submissions to an io.Writer, e.g. stdout
// or a clipboard pipe.
type WriterExporter struct {
	Writer io.Writer
	// Envelope switches output from the bare value mapping to the full
	// record envelope.
	Envelope bool
}

func (e WriterExporter) Export(ctx context.Context, record session.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.Writer == nil {
		return fmt.Errorf("export: writer is required")
	}

	payload, err := e.marshal(record)
	if err != nil {
		return err
	}
	if _, err := e.Writer.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("export: write submission: %w", err)
	}
	return nil
}

func (e WriterExporter) marshal(record session.Record) ([]byte, error) {
	if e.Envelope {
		return MarshalRecord(record)
	}
	return MarshalValues(record)
}
