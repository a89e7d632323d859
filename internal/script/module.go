package script

import (
	"context"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pagestorm/internal/engine"
	"github.com/dshills/pagestorm/internal/manifest"
)

// ModuleName is the name of the document module in Lua.
const ModuleName = "doc"

// Editor is the session surface scripts operate on. *engine.Engine
// implements it.
type Editor interface {
	Count() int
	CurrentIndex() int
	Page(i int) (engine.Page, error)
	Seek(i int) error
	Next() bool
	Prev() bool
	Remove() error
	RemoveAt(i int) error
	MoveBefore(src, dst int) error
	MoveAfter(src, dst int) error
	BeginMove() error
	CancelMove()
	PlaceBefore() error
	PlaceAfter() error
	Undo() error
	Redo() error
	Flatten() error
	Versions() []engine.VersionInfo
	StoreIDs() []engine.ID
	AppendFrom(ctx context.Context, l engine.Loader) error
}

var _ Editor = (*engine.Engine)(nil)

// docModule binds an Editor to Lua. Positions are 1-based on the Lua side.
type docModule struct {
	ed      Editor
	sandbox *Sandbox
}

// Bind registers the doc module for ed in s.
func Bind(s *State, ed Editor) {
	m := &docModule{ed: ed, sandbox: s.Sandbox()}
	s.Register(ModuleName, map[string]lua.LGFunction{
		"count":        m.count,
		"current":      m.current,
		"seek":         m.seek,
		"next":         m.next,
		"prev":         m.prev,
		"remove":       m.remove,
		"remove_at":    m.removeAt,
		"move_before":  m.moveBefore,
		"move_after":   m.moveAfter,
		"begin_move":   m.beginMove,
		"cancel_move":  m.cancelMove,
		"place_before": m.placeBefore,
		"place_after":  m.placeAfter,
		"undo":         m.undo,
		"redo":         m.redo,
		"id":           m.id,
		"label":        m.label,
		"labels":       m.labels,
		"append_pages": m.appendPages,
		"flatten":      m.flatten,
		"versions":     m.versions,
		"store_ids":    m.storeIDs,
	})
}

// op counts one document call against the sandbox limit.
func (m *docModule) op(L *lua.LState) {
	if m.sandbox.IncrementOperations(1) {
		L.RaiseError("%s", ErrOperationLimit)
	}
}

// check raises err as a Lua error.
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err)
	}
}

// index reads a 1-based position argument.
func index(L *lua.LState, n int) int {
	return L.CheckInt(n) - 1
}

func (m *docModule) count(L *lua.LState) int {
	m.op(L)
	L.Push(lua.LNumber(m.ed.Count()))
	return 1
}

func (m *docModule) current(L *lua.LState) int {
	m.op(L)
	L.Push(lua.LNumber(m.ed.CurrentIndex() + 1))
	return 1
}

func (m *docModule) seek(L *lua.LState) int {
	m.op(L)
	check(L, m.ed.Seek(index(L, 1)))
	return 0
}

func (m *docModule) next(L *lua.LState) int {
	m.op(L)
	L.Push(lua.LBool(m.ed.Next()))
	return 1
}

func (m *docModule) prev(L *lua.LState) int {
	m.op(L)
	L.Push(lua.LBool(m.ed.Prev()))
	return 1
}

// remove returns false when only one page is left.
func (m *docModule) remove(L *lua.LState) int {
	m.op(L)
	err := m.ed.Remove()
	if errors.Is(err, engine.ErrLastPage) {
		L.Push(lua.LFalse)
		return 1
	}
	check(L, err)
	L.Push(lua.LTrue)
	return 1
}

func (m *docModule) removeAt(L *lua.LState) int {
	m.op(L)
	check(L, m.ed.RemoveAt(index(L, 1)))
	return 0
}

func (m *docModule) moveBefore(L *lua.LState) int {
	m.op(L)
	check(L, m.ed.MoveBefore(index(L, 1), index(L, 2)))
	return 0
}

func (m *docModule) moveAfter(L *lua.LState) int {
	m.op(L)
	check(L, m.ed.MoveAfter(index(L, 1), index(L, 2)))
	return 0
}

func (m *docModule) beginMove(L *lua.LState) int {
	m.op(L)
	check(L, m.ed.BeginMove())
	return 0
}

func (m *docModule) cancelMove(L *lua.LState) int {
	m.op(L)
	m.ed.CancelMove()
	return 0
}

func (m *docModule) placeBefore(L *lua.LState) int {
	m.op(L)
	check(L, m.ed.PlaceBefore())
	return 0
}

func (m *docModule) placeAfter(L *lua.LState) int {
	m.op(L)
	check(L, m.ed.PlaceAfter())
	return 0
}

// undo returns false when there is nothing to undo.
func (m *docModule) undo(L *lua.LState) int {
	m.op(L)
	err := m.ed.Undo()
	if errors.Is(err, engine.ErrNoPreviousVersion) {
		L.Push(lua.LFalse)
		return 1
	}
	check(L, err)
	L.Push(lua.LTrue)
	return 1
}

// redo returns false when there is nothing to redo.
func (m *docModule) redo(L *lua.LState) int {
	m.op(L)
	err := m.ed.Redo()
	if errors.Is(err, engine.ErrNoLaterVersion) {
		L.Push(lua.LFalse)
		return 1
	}
	check(L, err)
	L.Push(lua.LTrue)
	return 1
}

func (m *docModule) id(L *lua.LState) int {
	m.op(L)
	p, err := m.ed.Page(index(L, 1))
	check(L, err)
	L.Push(lua.LString(p.ID))
	return 1
}

func (m *docModule) label(L *lua.LState) int {
	m.op(L)
	p, err := m.ed.Page(index(L, 1))
	check(L, err)
	L.Push(lua.LString(fmt.Sprint(p.Content)))
	return 1
}

// labels returns the labels of all pages as a sequence table.
func (m *docModule) labels(L *lua.LState) int {
	m.op(L)
	tbl := L.NewTable()
	for i := range m.ed.Count() {
		p, err := m.ed.Page(i)
		check(L, err)
		tbl.Append(lua.LString(fmt.Sprint(p.Content)))
	}
	L.Push(tbl)
	return 1
}

// appendPages appends pages first through last of a source document and
// returns how many were added. last defaults to first.
func (m *docModule) appendPages(L *lua.LState) int {
	m.op(L)
	source := L.CheckString(1)
	first := L.CheckInt(2)
	last := L.OptInt(3, first)

	l, err := manifest.RangeLoader(source, first, last)
	check(L, err)

	ctx := L.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	check(L, m.ed.AppendFrom(ctx, l))
	L.Push(lua.LNumber(last - first + 1))
	return 1
}

func (m *docModule) flatten(L *lua.LState) int {
	m.op(L)
	check(L, m.ed.Flatten())
	return 0
}

// versions returns the history as a sequence of {label, pages, current}.
func (m *docModule) versions(L *lua.LState) int {
	m.op(L)
	tbl := L.NewTable()
	for _, v := range m.ed.Versions() {
		entry := L.NewTable()
		entry.RawSetString("label", lua.LString(v.Label))
		entry.RawSetString("pages", lua.LNumber(v.PageCount))
		entry.RawSetString("current", lua.LBool(v.Current))
		tbl.Append(entry)
	}
	L.Push(tbl)
	return 1
}

// storeIDs returns every registered page ID, including removed pages.
func (m *docModule) storeIDs(L *lua.LState) int {
	m.op(L)
	tbl := L.NewTable()
	for _, id := range m.ed.StoreIDs() {
		tbl.Append(lua.LString(id))
	}
	L.Push(tbl)
	return 1
}
