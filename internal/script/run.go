package script

import (
	"context"
)

// RunFile runs the Lua file at path against ed in a fresh sandboxed state.
func RunFile(ctx context.Context, ed Editor, path string, opts ...StateOption) error {
	s := NewState(opts...)
	defer s.Close()

	Bind(s, ed)
	return s.DoFile(ctx, path)
}

// RunString runs a Lua chunk against ed in a fresh sandboxed state.
func RunString(ctx context.Context, ed Editor, code string, opts ...StateOption) error {
	s := NewState(opts...)
	defer s.Close()

	Bind(s, ed)
	return s.DoString(ctx, code)
}
