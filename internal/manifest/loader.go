package manifest

import (
	"context"
	"fmt"
	"os"

	"github.com/dshills/pagestorm/internal/engine"
	"github.com/dshills/pagestorm/internal/engine/page"
)

// Loader reads a manifest file and yields its PageRefs as page contents.
type Loader struct {
	// Path is the manifest file. Its extension selects the format.
	Path string
	// ReadFile reads the file. Nil means os.ReadFile.
	ReadFile func(name string) ([]byte, error)
}

// NewLoader returns a Loader for path on the OS file system.
func NewLoader(path string) *Loader {
	return &Loader{Path: path}
}

// Refs reads and decodes the manifest.
func (l *Loader) Refs(ctx context.Context) ([]PageRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatOf(l.Path)
	if err != nil {
		return nil, err
	}

	read := l.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	data, err := read(l.Path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", l.Path, err)
	}

	refs, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", l.Path, err)
	}
	return refs, nil
}

// Load implements engine.Loader.
func (l *Loader) Load(ctx context.Context) ([]page.Content, error) {
	refs, err := l.Refs(ctx)
	if err != nil {
		return nil, err
	}

	contents := make([]page.Content, len(refs))
	for i, r := range refs {
		contents[i] = r
	}
	return contents, nil
}

// RangeLoader returns a loader that yields pages first through last of
// source without reading a manifest file.
func RangeLoader(source string, first, last int) (engine.Loader, error) {
	refs := Range(source, first, last)
	if source == "" || len(refs) == 0 {
		return nil, fmt.Errorf("%w: page range %d-%d of %q", ErrMalformed, first, last, source)
	}

	contents := make([]page.Content, len(refs))
	for i, r := range refs {
		contents[i] = r
	}
	return engine.LoaderFunc(func(ctx context.Context) ([]page.Content, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return contents, nil
	}), nil
}
