package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/goliatone/go-dynaform/pkg/session"
)

// FileExporter writes serialized submissions to a file. The afero filesystem
// seam keeps tests off the real disk.
type FileExporter struct {
	FS   afero.Fs
	Path string
	// Envelope switches output from the bare value mapping to the full
	// record envelope.
	Envelope bool
}

// NewFileExporter builds a FileExporter with sensible defaults: the OS
// filesystem and DefaultFileName when fs or path are zero.
func NewFileExporter(fs afero.Fs, path string) FileExporter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if path == "" {
		path = DefaultFileName
	}
	return FileExporter{FS: fs, Path: path}
}

func (e FileExporter) Export(ctx context.Context, record session.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fs := e.FS
	if fs == nil {
		fs = afero.NewOsFs()
	}
	path := e.Path
	if path == "" {
		path = DefaultFileName
	}

	var (
		payload []byte
		err     error
	)
	if e.Envelope {
		payload, err = MarshalRecord(record)
	} else {
		payload, err = MarshalValues(record)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create directory %q: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fs, path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("export: write %q: %w", path, err)
	}
	return nil
}
