package engine

import (
	"errors"

	"github.com/dshills/pagestorm/internal/engine/document"
	"github.com/dshills/pagestorm/internal/engine/history"
	"github.com/dshills/pagestorm/internal/engine/page"
)

// Errors returned by engine operations.
var (
	// ErrDuplicateIdentifier indicates a page ID is already in the store.
	ErrDuplicateIdentifier = page.ErrDuplicateIdentifier

	// ErrUnknownIdentifier indicates a page ID is missing from the store.
	ErrUnknownIdentifier = page.ErrUnknownIdentifier

	// ErrIndexOutOfRange indicates a position outside the document.
	ErrIndexOutOfRange = document.ErrIndexOutOfRange

	// ErrNoPreviousVersion indicates there is nothing to undo.
	ErrNoPreviousVersion = history.ErrNoPreviousVersion

	// ErrNoLaterVersion indicates there is nothing to redo.
	ErrNoLaterVersion = history.ErrNoLaterVersion

	// ErrImportFailed indicates the loader could not produce pages.
	ErrImportFailed = errors.New("cannot import document")

	// ErrExportFailed indicates the writer could not store the document.
	ErrExportFailed = errors.New("cannot export document")

	// ErrInvalidDestination indicates the writer rejected the destination path.
	// Writers wrap it and the engine returns their error unchanged.
	ErrInvalidDestination = errors.New("destination path invalid")

	// ErrLastPage indicates an attempt to remove the only remaining page.
	ErrLastPage = errors.New("cannot remove the last page")

	// ErrEmptyDocument indicates an operation that needs a current page.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrNoPendingMove indicates a place operation without BeginMove.
	ErrNoPendingMove = errors.New("no pending move")

	// ErrMoveInProgress indicates an edit attempted while a move is pending.
	ErrMoveInProgress = errors.New("move in progress")
)
