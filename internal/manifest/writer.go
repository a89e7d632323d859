package manifest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/pagestorm/internal/engine"
	"github.com/dshills/pagestorm/internal/engine/page"
)

// Writer stores page contents as a manifest file.
type Writer struct {
	// WriteFile writes the file. Nil means os.WriteFile.
	WriteFile func(name string, data []byte, perm os.FileMode) error
	// Perm is the file mode of created files. Zero means 0644.
	Perm os.FileMode
}

var (
	_ engine.Loader = (*Loader)(nil)
	_ engine.Writer = (*Writer)(nil)
)

// NewWriter returns a Writer for the OS file system.
func NewWriter() *Writer {
	return &Writer{}
}

// ValidateDestination reports whether dest can name a manifest file.
// Rejected paths match engine.ErrInvalidDestination.
func ValidateDestination(dest string) error {
	if dest == "" || strings.HasSuffix(dest, "/") || strings.HasSuffix(dest, string(os.PathSeparator)) {
		return fmt.Errorf("%w: %q is not a file path", engine.ErrInvalidDestination, dest)
	}
	if _, err := FormatOf(dest); err != nil {
		return fmt.Errorf("%w: %w", engine.ErrInvalidDestination, err)
	}
	return nil
}

// Refs converts page contents back to PageRefs.
func Refs(contents []page.Content) ([]PageRef, error) {
	refs := make([]PageRef, len(contents))
	for i, c := range contents {
		switch r := c.(type) {
		case PageRef:
			refs[i] = r
		case *PageRef:
			refs[i] = *r
		default:
			return nil, fmt.Errorf("%w: page %d holds %T", ErrUnsupportedContent, i, c)
		}
	}
	return refs, nil
}

// Write implements engine.Writer.
func (w *Writer) Write(ctx context.Context, dest string, contents []page.Content) error {
	if err := ValidateDestination(dest); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	refs, err := Refs(contents)
	if err != nil {
		return err
	}

	format, _ := FormatOf(dest)
	data, err := Encode(format, refs)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", dest, err)
	}

	write := w.WriteFile
	if write == nil {
		write = os.WriteFile
	}
	perm := w.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := write(dest, data, perm); err != nil {
		return fmt.Errorf("writing manifest %s: %w", dest, err)
	}
	return nil
}
