package engine

import (
	"context"

	"github.com/dshills/pagestorm/internal/engine/page"
)

// Loader produces the content handles of an external document in page order.
type Loader interface {
	Load(ctx context.Context) ([]page.Content, error)
}

// Writer stores content handles, in order, at an external destination.
type Writer interface {
	Write(ctx context.Context, dest string, contents []page.Content) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]page.Content, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) ([]page.Content, error) {
	return f(ctx)
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(ctx context.Context, dest string, contents []page.Content) error

// Write calls f(ctx, dest, contents).
func (f WriterFunc) Write(ctx context.Context, dest string, contents []page.Content) error {
	return f(ctx, dest, contents)
}

// Logger receives engine diagnostics. Messages use printf formatting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
