package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/pagestorm/internal/engine/document"
	"github.com/dshills/pagestorm/internal/engine/history"
	"github.com/dshills/pagestorm/internal/engine/ident"
	"github.com/dshills/pagestorm/internal/engine/page"
)

// Re-export commonly used types for convenience.
type (
	// ID uniquely identifies a page in the session store.
	ID = page.ID

	// Page is an immutable page record.
	Page = page.Page

	// Content is an opaque page content handle.
	Content = page.Content

	// Document is an ordered sequence of page references.
	Document = document.Document

	// VersionInfo describes a recorded history version.
	VersionInfo = history.VersionInfo
)

// ChangeKind categorizes committed edits.
type ChangeKind int

const (
	ChangeOpen ChangeKind = iota
	ChangeAppend
	ChangeRemove
	ChangeMove
	ChangeUndo
	ChangeRedo
	ChangeFlatten
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeOpen:
		return "open"
	case ChangeAppend:
		return "append"
	case ChangeRemove:
		return "remove"
	case ChangeMove:
		return "move"
	case ChangeUndo:
		return "undo"
	case ChangeRedo:
		return "redo"
	case ChangeFlatten:
		return "flatten"
	default:
		return "unknown"
	}
}

// Change describes an edit after it has been applied.
type Change struct {
	Kind      ChangeKind
	Version   int
	PageCount int
	Current   int
}

// noMove marks the absence of a pending move.
const noMove = -1

// Engine is one editing session over a paginated document.
// It owns the page store, the identifier generator, the live document,
// the version history and the current page position.
//
// All operations are serialized by a mutex; the live document and its
// history are never exposed without copying.
type Engine struct {
	mu sync.Mutex

	// Core components
	store   *page.Store
	gen     ident.Generator
	doc     *document.Document
	history *history.Recorder

	// Session state
	current  int
	moveFrom int

	// Configuration
	maxVersions int
	logger      Logger

	// Event handlers
	onChange []func(Change)
}

// New creates an Engine with an empty document and empty history.
func New(opts ...Option) *Engine {
	e := &Engine{
		gen:      ident.NewCounter(),
		logger:   nopLogger{},
		moveFrom: noMove,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.store = page.NewStore()
	e.doc = document.New(e.store)
	e.history = history.NewRecorder(history.WithMaxVersions(e.maxVersions))

	return e
}

// ============================================================================
// Import / Export
// ============================================================================

// Import loads a document through l, registering every page in the session
// store under a fresh identifier. The live document is not changed.
func (e *Engine) Import(ctx context.Context, l Loader) (*Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.importLocked(ctx, l)
}

func (e *Engine) importLocked(ctx context.Context, l Loader) (*Document, error) {
	contents, err := l.Load(ctx)
	if err != nil {
		e.logger.Error("import failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrImportFailed, err)
	}

	doc := document.New(e.store)
	for _, c := range contents {
		p := page.New(e.gen.Next(), c)
		if err := e.store.Add(p); err != nil {
			return nil, err
		}
		if err := doc.Append(p); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("imported %d pages", doc.Count())
	return doc, nil
}

// Open imports a document and makes it the live document.
// History receives the opened document as a new version.
func (e *Engine) Open(ctx context.Context, l Loader) error {
	e.mu.Lock()
	if e.moveFrom != noMove {
		e.mu.Unlock()
		return ErrMoveInProgress
	}

	doc, err := e.importLocked(ctx, l)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	e.doc = doc
	e.current = 0
	change := e.commitLocked(ChangeOpen)
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// AppendFrom imports a document and appends all of its pages to the live
// document.
func (e *Engine) AppendFrom(ctx context.Context, l Loader) error {
	e.mu.Lock()
	if e.moveFrom != noMove {
		e.mu.Unlock()
		return ErrMoveInProgress
	}

	doc, err := e.importLocked(ctx, l)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	return e.appendAllLocked(doc)
}

// AppendAll appends every page of other to the live document.
// Pages appended before a failing page are kept and committed.
func (e *Engine) AppendAll(other *Document) error {
	e.mu.Lock()
	if e.moveFrom != noMove {
		e.mu.Unlock()
		return ErrMoveInProgress
	}
	return e.appendAllLocked(other)
}

// appendAllLocked appends other and releases the lock.
func (e *Engine) appendAllLocked(other *Document) error {
	before := e.doc.Count()
	err := e.doc.AppendAll(other)
	if e.doc.Count() == before {
		e.mu.Unlock()
		return err
	}
	if err != nil {
		e.logger.Warn("append stopped after %d of %d pages: %v", e.doc.Count()-before, other.Count(), err)
	}

	change := e.commitLocked(ChangeAppend)
	e.mu.Unlock()

	e.notify(change)
	return err
}

// Export hands the content of every page, in order, to w.
// A destination rejected by the writer is reported with the writer's own
// error; other writer failures are wrapped in ErrExportFailed.
func (e *Engine) Export(ctx context.Context, w Writer, dest string) error {
	e.mu.Lock()
	if e.moveFrom != noMove {
		e.mu.Unlock()
		return ErrMoveInProgress
	}
	contents := e.doc.Contents()
	e.mu.Unlock()

	if err := w.Write(ctx, dest, contents); err != nil {
		e.logger.Error("export to %s failed: %v", dest, err)
		if errors.Is(err, ErrInvalidDestination) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	e.logger.Info("exported %d pages to %s", len(contents), dest)
	return nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Document returns a copy of the live document.
func (e *Engine) Document() *Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Copy()
}

// Count returns the number of pages in the live document.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Count()
}

// Page returns the page at index i of the live document.
func (e *Engine) Page(i int) (Page, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Get(i)
}

// StoreCount returns the number of pages registered in the session store.
func (e *Engine) StoreCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Count()
}

// StoreIDs returns every ID registered in the session store, sorted. Pages
// removed from the live document stay registered.
func (e *Engine) StoreIDs() []ID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.IDs()
}

// ============================================================================
// Navigation
// ============================================================================

// CurrentIndex returns the index of the current page.
func (e *Engine) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// CurrentPage returns the current page.
func (e *Engine) CurrentPage() (Page, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc.Count() == 0 {
		return Page{}, ErrEmptyDocument
	}
	return e.doc.Get(e.current)
}

// Seek makes the page at index i current.
func (e *Engine) Seek(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= e.doc.Count() {
		return &document.IndexError{Op: "seek", Index: i, Len: e.doc.Count()}
	}
	e.current = i
	return nil
}

// Next advances to the following page. It returns false at the last page.
func (e *Engine) Next() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current+1 >= e.doc.Count() {
		return false
	}
	e.current++
	return true
}

// Prev steps back to the preceding page. It returns false at the first page.
func (e *Engine) Prev() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current <= 0 {
		return false
	}
	e.current--
	return true
}

// ============================================================================
// Edit Operations
// ============================================================================

// Remove deletes the current page. The only remaining page cannot be
// removed, and an empty document reports ErrEmptyDocument. The page before the removed one becomes current, unless the
// first page was removed.
func (e *Engine) Remove() error {
	e.mu.Lock()
	if err := e.checkEditableLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	switch e.doc.Count() {
	case 0:
		e.mu.Unlock()
		return ErrEmptyDocument
	case 1:
		e.mu.Unlock()
		return ErrLastPage
	}

	if err := e.doc.Remove(e.current); err != nil {
		e.mu.Unlock()
		return err
	}
	if e.current > 0 {
		e.current--
	}

	change := e.commitLocked(ChangeRemove)
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// RemoveAt deletes the page at index i.
func (e *Engine) RemoveAt(i int) error {
	e.mu.Lock()
	if err := e.checkEditableLocked(); err != nil {
		e.mu.Unlock()
		return err
	}

	if err := e.doc.Remove(i); err != nil {
		e.mu.Unlock()
		return err
	}
	if i < e.current || e.current >= e.doc.Count() {
		e.current = max(e.current-1, 0)
	}

	change := e.commitLocked(ChangeRemove)
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// MoveBefore places the page at src immediately before the page at dst.
func (e *Engine) MoveBefore(src, dst int) error {
	return e.move(src, dst, (*document.Document).MoveBefore)
}

// MoveAfter places the page at src immediately after the page at dst.
func (e *Engine) MoveAfter(src, dst int) error {
	return e.move(src, dst, (*document.Document).MoveAfter)
}

func (e *Engine) move(src, dst int, fn func(*document.Document, int, int) error) error {
	e.mu.Lock()
	if err := e.checkEditableLocked(); err != nil {
		e.mu.Unlock()
		return err
	}

	if err := fn(e.doc, src, dst); err != nil {
		e.mu.Unlock()
		return err
	}

	change := e.commitLocked(ChangeMove)
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// BeginMove marks the current page as the page to move.
// Navigate to the target page and call PlaceBefore or PlaceAfter.
func (e *Engine) BeginMove() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc.Count() == 0 {
		return ErrEmptyDocument
	}
	if e.moveFrom != noMove {
		return ErrMoveInProgress
	}
	e.moveFrom = e.current
	return nil
}

// CancelMove abandons a pending move.
func (e *Engine) CancelMove() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveFrom = noMove
}

// MovePending returns the index of the page waiting to be placed.
func (e *Engine) MovePending() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.moveFrom, e.moveFrom != noMove
}

// PlaceBefore moves the pending page before the current page.
// The current page stays current.
func (e *Engine) PlaceBefore() error {
	e.mu.Lock()
	if e.moveFrom == noMove {
		e.mu.Unlock()
		return ErrNoPendingMove
	}

	src := e.moveFrom
	if err := e.doc.MoveBefore(src, e.current); err != nil {
		e.mu.Unlock()
		return err
	}
	if src > e.current {
		e.current++
	}
	e.moveFrom = noMove

	change := e.commitLocked(ChangeMove)
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// PlaceAfter moves the pending page after the current page.
// The current page stays current.
func (e *Engine) PlaceAfter() error {
	e.mu.Lock()
	if e.moveFrom == noMove {
		e.mu.Unlock()
		return ErrNoPendingMove
	}

	src := e.moveFrom
	if err := e.doc.MoveAfter(src, e.current); err != nil {
		e.mu.Unlock()
		return err
	}
	if src < e.current {
		e.current--
	}
	e.moveFrom = noMove

	change := e.commitLocked(ChangeMove)
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// ============================================================================
// Undo/Redo
// ============================================================================

// Undo replaces the live document with the previous version.
func (e *Engine) Undo() error {
	return e.step(ChangeUndo, (*history.Recorder).Undo)
}

// Redo replaces the live document with the next version.
func (e *Engine) Redo() error {
	return e.step(ChangeRedo, (*history.Recorder).Redo)
}

func (e *Engine) step(kind ChangeKind, fn func(*history.Recorder) (*document.Document, error)) error {
	e.mu.Lock()
	if e.moveFrom != noMove {
		e.mu.Unlock()
		return ErrMoveInProgress
	}

	doc, err := fn(e.history)
	if err != nil {
		e.mu.Unlock()
		e.logger.Debug("%s: %v", kind, err)
		return err
	}

	e.doc = doc
	if e.current > e.doc.Count()-1 {
		e.current = max(e.doc.Count()-1, 0)
	}

	change := e.changeLocked(kind)
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// Flatten discards every version except the current one, which becomes
// the only entry in history. It does nothing before the first commit.
func (e *Engine) Flatten() error {
	e.mu.Lock()
	if err := e.checkEditableLocked(); err != nil {
		e.mu.Unlock()
		return err
	}

	doc, ok := e.history.Peek()
	if !ok {
		e.mu.Unlock()
		return nil
	}
	e.history.Clear()
	e.history.CommitLabeled(doc, ChangeFlatten.String())
	e.logger.Debug("history flattened (%d pages)", doc.Count())

	change := e.changeLocked(ChangeFlatten)
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.CanRedo()
}

// Versions returns info about every recorded version.
func (e *Engine) Versions() []VersionInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Versions()
}

// ============================================================================
// Events
// ============================================================================

// OnChange registers a handler called after every committed edit and
// every successful undo or redo.
func (e *Engine) OnChange(handler func(Change)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = append(e.onChange, handler)
}

// notify calls change handlers without holding the lock.
func (e *Engine) notify(c Change) {
	e.mu.Lock()
	handlers := make([]func(Change), len(e.onChange))
	copy(handlers, e.onChange)
	e.mu.Unlock()

	for _, handler := range handlers {
		handler(c)
	}
}

// ============================================================================
// Internal Helpers
// ============================================================================

// commitLocked records the live document as a new version.
func (e *Engine) commitLocked(kind ChangeKind) Change {
	e.history.CommitLabeled(e.doc, kind.String())
	e.logger.Debug("%s committed version %d (%d pages)", kind, e.history.Current(), e.doc.Count())
	return e.changeLocked(kind)
}

func (e *Engine) changeLocked(kind ChangeKind) Change {
	return Change{
		Kind:      kind,
		Version:   e.history.Current(),
		PageCount: e.doc.Count(),
		Current:   e.current,
	}
}

// checkEditableLocked rejects edits while a move is pending.
func (e *Engine) checkEditableLocked() error {
	if e.moveFrom != noMove {
		return ErrMoveInProgress
	}
	return nil
}
