package document

import (
	"fmt"
	"iter"
	"slices"

	"github.com/dshills/pagestorm/internal/engine/page"
)

// Document is an ordered sequence of page IDs resolved through a store.
// The store is shared and never owned by the document.
type Document struct {
	store *page.Store
	ids   []page.ID
}

// New creates an empty document bound to store.
func New(store *page.Store) *Document {
	return &Document{store: store}
}

// Store returns the store the document is bound to.
func (d *Document) Store() *page.Store {
	return d.store
}

// Count returns the number of entries in the document.
func (d *Document) Count() int {
	return len(d.ids)
}

// IDs returns a copy of the ordered ID sequence.
func (d *Document) IDs() []page.ID {
	return slices.Clone(d.ids)
}

// Append adds p to the end of the document.
// The page must already be registered in the bound store.
func (d *Document) Append(p page.Page) error {
	if !d.store.Contains(p.ID) {
		return fmt.Errorf("append page %q: %w", p.ID, page.ErrUnknownIdentifier)
	}
	d.ids = append(d.ids, p.ID)
	return nil
}

// Get returns the page at index i.
func (d *Document) Get(i int) (page.Page, error) {
	if err := d.checkIndex("get", i); err != nil {
		return page.Page{}, err
	}
	return d.store.Get(d.ids[i])
}

// Remove deletes the entry at index i. The store is not affected.
func (d *Document) Remove(i int) error {
	if err := d.checkIndex("remove", i); err != nil {
		return err
	}
	d.ids = slices.Delete(d.ids, i, i+1)
	return nil
}

// MoveBefore places the entry at src immediately before the entry that is
// currently at dst.
func (d *Document) MoveBefore(src, dst int) error {
	if err := d.checkIndex("move before", src); err != nil {
		return err
	}
	if err := d.checkIndex("move before", dst); err != nil {
		return err
	}
	d.ids = slices.Insert(d.ids, dst, d.ids[src])
	if src < dst {
		d.ids = slices.Delete(d.ids, src, src+1)
	} else {
		d.ids = slices.Delete(d.ids, src+1, src+2)
	}
	return nil
}

// MoveAfter places the entry at src immediately after the entry that is
// currently at dst.
func (d *Document) MoveAfter(src, dst int) error {
	if err := d.checkIndex("move after", src); err != nil {
		return err
	}
	if err := d.checkIndex("move after", dst); err != nil {
		return err
	}
	d.ids = slices.Insert(d.ids, dst+1, d.ids[src])
	if src >= dst {
		d.ids = slices.Delete(d.ids, src+1, src+2)
	} else {
		d.ids = slices.Delete(d.ids, src, src+1)
	}
	return nil
}

// AppendAll appends every page of other, in order.
// It is not atomic: when a page of other is missing from this document's
// store, the pages before it stay appended and the error is returned.
func (d *Document) AppendAll(other *Document) error {
	for i, id := range other.IDs() {
		p, err := other.store.Get(id)
		if err != nil {
			return fmt.Errorf("append all at %d: %w", i, err)
		}
		if err := d.Append(p); err != nil {
			return fmt.Errorf("append all at %d: %w", i, err)
		}
	}
	return nil
}

// Copy returns a document bound to the same store with its own copy of the
// ID sequence.
func (d *Document) Copy() *Document {
	return &Document{
		store: d.store,
		ids:   slices.Clone(d.ids),
	}
}

// Equal reports whether both documents hold the same ID sequence.
// The bound stores are not compared.
func (d *Document) Equal(other *Document) bool {
	if other == nil {
		return false
	}
	return slices.Equal(d.ids, other.ids)
}

// All returns an iterator over the resolved pages in order.
// Each call starts a fresh traversal. Iteration stops early at an ID the
// store cannot resolve, which the Append invariant rules out.
func (d *Document) All() iter.Seq[page.Page] {
	return func(yield func(page.Page) bool) {
		for i := 0; i < len(d.ids); i++ {
			p, err := d.store.Get(d.ids[i])
			if err != nil {
				return
			}
			if !yield(p) {
				return
			}
		}
	}
}

// Pages returns the resolved pages as a slice.
func (d *Document) Pages() []page.Page {
	return slices.Collect(d.All())
}

// Contents returns the content handles of all pages in order.
func (d *Document) Contents() []page.Content {
	contents := make([]page.Content, 0, len(d.ids))
	for p := range d.All() {
		contents = append(contents, p.Content)
	}
	return contents
}

// checkIndex validates i against the current sequence length.
func (d *Document) checkIndex(op string, i int) error {
	if i < 0 || i >= len(d.ids) {
		return &IndexError{Op: op, Index: i, Len: len(d.ids)}
	}
	return nil
}
