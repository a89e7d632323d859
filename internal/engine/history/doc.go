// Package history provides undo/redo over document versions.
//
// The history system keeps whole-document snapshots rather than inverse
// edits. A Recorder holds an ordered list of versions and a cursor that
// points at the version the session is currently showing:
//
//	rec := history.NewRecorder()
//
//	rec.Commit(doc)          // version 0
//	doc.Remove(0)
//	rec.Commit(doc)          // version 1
//
//	prev, err := rec.Undo()  // copy of version 0
//	next, err := rec.Redo()  // copy of version 1
//
// # Branch Truncation
//
// The timeline is linear. Committing after an undo discards every version
// ahead of the cursor, so the redo branch does not survive a new edit.
//
// # Snapshot Isolation
//
// Commit stores a copy of the document and Undo/Redo return copies of the
// stored versions. Callers may mutate what they get back without touching
// recorded history.
package history
