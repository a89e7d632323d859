package page

import "reflect"

// ID uniquely identifies a page within a Store.
type ID string

// String returns the ID as a string.
func (id ID) String() string {
	return string(id)
}

// Content is an opaque handle to page content.
type Content any

// Page is an immutable page record.
type Page struct {
	ID      ID
	Content Content
}

// New creates a page with the given ID and content handle.
func New(id ID, content Content) Page {
	return Page{ID: id, Content: content}
}

// Equal reports whether two pages have the same ID and the same content handle.
func (p Page) Equal(other Page) bool {
	if p.ID != other.ID {
		return false
	}
	return sameContent(p.Content, other.Content)
}

// sameContent compares handles with == when their dynamic type allows it
// and falls back to a deep comparison for slices, maps and funcs. A
// comparable struct can still hold an uncomparable value in an interface
// field, so a panicking == also falls back.
func sameContent(a, b Content) (same bool) {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	defer func() {
		if recover() != nil {
			same = reflect.DeepEqual(a, b)
		}
	}()
	return a == b
}
