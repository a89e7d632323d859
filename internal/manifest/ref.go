package manifest

import (
	"fmt"
)

// PageRef references one page of a source file.
type PageRef struct {
	// Source is the file the page comes from.
	Source string `toml:"source"`
	// Number is the 1-based page number within Source.
	Number int `toml:"number"`
	// Label is an optional display name.
	Label string `toml:"label,omitempty"`
}

// String returns the label, or source#number when unlabeled.
func (r PageRef) String() string {
	if r.Label != "" {
		return r.Label
	}
	return fmt.Sprintf("%s#%d", r.Source, r.Number)
}

func (r PageRef) validate(i int) error {
	if r.Source == "" {
		return &EntryError{Index: i, Reason: "missing source"}
	}
	if r.Number < 1 {
		return &EntryError{Index: i, Reason: fmt.Sprintf("page number %d out of range", r.Number)}
	}
	return nil
}

// Range returns references to pages first through last of source. An
// empty or inverted range yields nil.
func Range(source string, first, last int) []PageRef {
	if first < 1 || last < first {
		return nil
	}
	refs := make([]PageRef, 0, last-first+1)
	for n := first; n <= last; n++ {
		refs = append(refs, PageRef{Source: source, Number: n})
	}
	return refs
}
