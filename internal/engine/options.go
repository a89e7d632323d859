package engine

import (
	"github.com/dshills/pagestorm/internal/engine/ident"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithGenerator sets the identifier generator used for imported pages.
func WithGenerator(gen ident.Generator) Option {
	return func(e *Engine) {
		if gen != nil {
			e.gen = gen
		}
	}
}

// WithMaxVersions sets the maximum number of retained history versions.
// Zero keeps every version.
func WithMaxVersions(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxVersions = n
		}
	}
}

// WithLogger sets the logger for engine events.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
