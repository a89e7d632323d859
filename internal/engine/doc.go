// Package engine provides the document editing engine for Pagestorm.
//
// The engine package serves as the main facade, combining the page store,
// identifier generation, the live document and its version history into
// one editing session.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - page: immutable pages and the append-only page store
//   - ident: unique page identifier generators
//   - document: ordered page references with move/remove/append
//   - history: linear version timeline with undo/redo
//
// # Thread Safety
//
// All Engine operations are serialized by a mutex, so one Engine can be
// shared between goroutines. The sub-packages do no locking of their own;
// code that uses them directly must serialize access to a store and the
// documents bound to it.
//
// # Basic Usage
//
// Open a document through a Loader and edit it:
//
//	e := engine.New()
//	if err := e.Open(ctx, loader); err != nil {
//	    // errors.Is(err, engine.ErrImportFailed)
//	}
//
//	e.Seek(2)
//	e.Remove()          // removes page 3, page 2 becomes current
//	e.MoveAfter(0, 1)
//
// Every successful edit is committed to history:
//
//	e.Undo() // restores the document before MoveAfter
//	e.Redo()
//
// Undo and Redo return ErrNoPreviousVersion and ErrNoLaterVersion at the
// ends of the timeline. Callers usually treat these as no-ops.
//
// # Move Mode
//
// Pages can also be moved relative to the current page:
//
//	e.Seek(3)
//	e.BeginMove()   // page 4 is pending
//	e.Seek(0)
//	e.PlaceBefore() // page 4 is now first; the current page stays current
//
// # Export
//
// Export hands the ordered page contents to a Writer:
//
//	err := e.Export(ctx, writer, "out.toml")
//
// A destination rejected by the writer is reported unchanged and matches
// ErrInvalidDestination; other failures match ErrExportFailed.
//
// # Error Handling
//
// The package re-exports the error kinds of the sub-packages:
//
//   - ErrDuplicateIdentifier: Page ID already stored
//   - ErrUnknownIdentifier: Page ID not in the store
//   - ErrIndexOutOfRange: Invalid page position
//   - ErrNoPreviousVersion: Nothing to undo
//   - ErrNoLaterVersion: Nothing to redo
//   - ErrImportFailed: Loader failure
//   - ErrExportFailed: Writer failure
package engine
