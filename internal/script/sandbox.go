package script

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	// Operation limiting
	operationLimit int64
	operationCount atomic.Int64

	out io.Writer
}

// NewSandbox creates a sandbox for the Lua state. A limit of zero allows
// any number of operations.
func NewSandbox(L *lua.LState, operationLimit int64, out io.Writer) *Sandbox {
	return &Sandbox{
		L:              L,
		operationLimit: operationLimit,
		out:            out,
	}
}

// Install removes loaders that could escape the sandbox and replaces
// print and require.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installPrint()
	s.installRequire()
}

// installPrint sends print output to the sandbox writer.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.out, strings.Join(parts, "\t"))
		return 0
	}))
}

// safeModules lists the modules require may return.
var safeModules = map[string]bool{
	"string":   true,
	"table":    true,
	"math":     true,
	ModuleName: true,
}

// installRequire replaces require with a version limited to safeModules.
// Module search paths are cleared so nothing is loaded from disk.
func (s *Sandbox) installRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")

	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		modName := L.CheckString(1)
		if !safeModules[modName] {
			L.RaiseError("module %q is not available", modName)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(modName))
		L.Call(1, 1)
		return 1
	}))
}

// ResetOperationCount resets the operation counter.
func (s *Sandbox) ResetOperationCount() {
	s.operationCount.Store(0)
}

// OperationCount returns the number of operations in the current run.
func (s *Sandbox) OperationCount() int64 {
	return s.operationCount.Load()
}

// IncrementOperations adds to the operation count and returns true if the
// limit is exceeded.
func (s *Sandbox) IncrementOperations(n int64) bool {
	count := s.operationCount.Add(n)
	return s.operationLimit > 0 && count > s.operationLimit
}

// LimitExceeded reports whether the current run went over the limit.
func (s *Sandbox) LimitExceeded() bool {
	return s.operationLimit > 0 && s.operationCount.Load() > s.operationLimit
}
