package tracker

import (
	"context"
	"errors"

	"relstamp/internal/core/model"
)

// ErrNoMetadata indicates the document has no stored value for the requested key.
var ErrNoMetadata = errors.New("no metadata")

// Editor is the host surface that holds the active document.
type Editor interface {
	// ActiveDocument returns the identifier of the focused document.
	ActiveDocument() (string, bool)
	// ReplaceSelection inserts text at the cursor, replacing any selection.
	ReplaceSelection(text string) error
	// SelectedText returns the current selection.
	SelectedText() (string, error)
}

// Metadata reads and writes per-document key/value fields.
type Metadata interface {
	ReadField(ctx context.Context, document, key string) (string, error)
	WriteField(ctx context.Context, document, key, value string) error
}

// Settings persists tracker state between runs.
type Settings interface {
	SaveState(ctx context.Context, state model.TrackerState) error
}

// Notifier surfaces short confirmations to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls fn.
func (fn NotifierFunc) Notify(message string) {
	fn(message)
}
