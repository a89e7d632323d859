// Package page provides the immutable page record and the append-only
// store that documents reference pages through.
//
// A Page pairs a unique ID with an opaque content handle. The handle is
// owned by whatever loaded the page (a manifest reader, a PDF decoder) and
// is never inspected here.
//
// # Store
//
// A Store is a content-addressed registry keyed by page ID:
//
//	store := page.NewStore()
//	if err := store.Add(page.New("0", handle)); err != nil {
//	    // errors.Is(err, page.ErrDuplicateIdentifier)
//	}
//	p, err := store.Get("0")
//
// Pages are never removed or replaced once added. Any number of documents
// may share one store; the store outlives all of them.
//
// # Thread Safety
//
// Store is not safe for concurrent mutation. The editing session that owns
// a store serializes access to it.
package page
