package history

import (
	"errors"
	"time"

	"github.com/dshills/pagestorm/internal/engine/document"
)

// Common errors for history operations.
var (
	ErrNoPreviousVersion = errors.New("no previous version")
	ErrNoLaterVersion    = errors.New("no later version")
)

// version wraps a document snapshot with metadata.
type version struct {
	doc       *document.Document
	label     string
	timestamp time.Time
}

// VersionInfo describes a recorded version.
type VersionInfo struct {
	Index     int
	Label     string
	PageCount int
	Timestamp time.Time
	Current   bool
}

// Recorder manages the version timeline of a document.
type Recorder struct {
	versions []*version
	current  int

	// Configuration
	maxVersions int
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithMaxVersions bounds the number of retained versions.
// Zero or a negative value keeps every version.
func WithMaxVersions(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.maxVersions = n
		}
	}
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		current: -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Commit records a copy of doc as the newest version.
// Versions after the current one are discarded.
func (r *Recorder) Commit(doc *document.Document) {
	r.CommitLabeled(doc, "")
}

// CommitLabeled records a copy of doc with a description.
func (r *Recorder) CommitLabeled(doc *document.Document, label string) {
	r.current++

	// Drop the redo branch
	clear(r.versions[r.current:])
	r.versions = r.versions[:r.current]

	r.versions = append(r.versions, &version{
		doc:       doc.Copy(),
		label:     label,
		timestamp: time.Now(),
	})

	// Enforce max versions
	if r.maxVersions > 0 && len(r.versions) > r.maxVersions {
		excess := len(r.versions) - r.maxVersions
		r.versions = r.versions[excess:]
		r.current -= excess
	}
}

// Undo steps back one version and returns a copy of it.
func (r *Recorder) Undo() (*document.Document, error) {
	if r.current <= 0 {
		return nil, ErrNoPreviousVersion
	}
	r.current--
	return r.versions[r.current].doc.Copy(), nil
}

// Redo steps forward one version and returns a copy of it.
func (r *Recorder) Redo() (*document.Document, error) {
	if r.current >= len(r.versions)-1 {
		return nil, ErrNoLaterVersion
	}
	r.current++
	return r.versions[r.current].doc.Copy(), nil
}

// CanUndo returns true if undo is available.
func (r *Recorder) CanUndo() bool {
	return r.current > 0
}

// CanRedo returns true if redo is available.
func (r *Recorder) CanRedo() bool {
	return r.current < len(r.versions)-1
}

// Len returns the number of recorded versions.
func (r *Recorder) Len() int {
	return len(r.versions)
}

// Current returns the cursor, or -1 when nothing has been committed.
func (r *Recorder) Current() int {
	return r.current
}

// Peek returns a copy of the current version without moving the cursor.
func (r *Recorder) Peek() (*document.Document, bool) {
	if r.current < 0 {
		return nil, false
	}
	return r.versions[r.current].doc.Copy(), true
}

// Versions returns info about every recorded version, oldest first.
func (r *Recorder) Versions() []VersionInfo {
	result := make([]VersionInfo, len(r.versions))
	for i, v := range r.versions {
		result[i] = VersionInfo{
			Index:     i,
			Label:     v.label,
			PageCount: v.doc.Count(),
			Timestamp: v.timestamp,
			Current:   i == r.current,
		}
	}
	return result
}

// Clear removes all versions.
func (r *Recorder) Clear() {
	r.versions = nil
	r.current = -1
}

// MaxVersions returns the version limit, or 0 when unbounded.
func (r *Recorder) MaxVersions() int {
	return r.maxVersions
}
