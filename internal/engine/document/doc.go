// Package document provides the ordered page sequence edited by a session.
//
// A Document is a list of page IDs bound to one page.Store. The same ID may
// appear at several positions. Every ID in the list must resolve in the
// bound store; Append rejects pages the store does not hold, so the
// invariant holds after every mutation.
//
// # Moving Pages
//
// MoveBefore and MoveAfter relocate one entry relative to another, with both
// indexes measured against the sequence before the move. The move is done
// by inserting a copy of the source ID at the target slot and then deleting
// the original occurrence, whose index shifts by one when the insertion
// landed at or before it:
//
//	// [p1 p2 p3 p4]
//	doc.MoveBefore(1, 3) // [p1 p3 p2 p4]
//	doc.MoveAfter(3, 0)  // [p1 p4 p2 p3] (from the original order)
//
// Moving an entry before itself, after itself, before its successor or
// after its predecessor leaves the sequence unchanged.
//
// # Copies
//
// Copy returns a document sharing the store but owning its own ID list.
// History snapshots are copies, so mutating the live document never
// changes recorded versions.
package document
