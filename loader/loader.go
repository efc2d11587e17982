// Package loader is the file-system collaborator of the formatting pipeline:
// it validates the input path, reads the whole file into memory in one piece
// and hands the contents to the parser. There is no streaming or partial
// read; a run is bounded by input size only.
package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/robinvdvleuten/traderfmt/ast"
	"github.com/robinvdvleuten/traderfmt/parser"
	"github.com/robinvdvleuten/traderfmt/telemetry"
)

// InvalidPathError reports a path that does not name an existing regular
// file. No read or parse is attempted for such a path.
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: not an existing regular file", e.Path)
}

func (e *InvalidPathError) Unwrap() error {
	return e.Err
}

// Loader handles loading and parsing of trader config files.
type Loader struct{}

// New creates a new Loader.
func New() *Loader {
	return &Loader{}
}

// Load validates, reads and parses a trader config file.
func (l *Loader) Load(ctx context.Context, filename string) (*ast.Document, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, &InvalidPathError{Path: filename, Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &InvalidPathError{Path: filename}
	}

	readTimer := telemetry.FromContext(ctx).Start("read")
	data, err := os.ReadFile(filename)
	readTimer.End()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses contents that were already read, e.g. from stdin.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*ast.Document, error) {
	return parser.ParseBytesWithFilename(ctx, filename, data)
}
