// Package editor provides the desktop editing surface for one markdown document.
package editor

import (
	"errors"
	"fmt"
	"path/filepath"

	"relstamp/internal/document"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ErrNoDocument indicates a save without an open document.
var ErrNoDocument = errors.New("no document open")

// Callbacks defines editor action handlers.
type Callbacks struct {
	OnOpened        func(path string)
	OnInsert        func()
	OnSaveSelection func()
	OnReset         func()
	OnError         func(err error)
}

// InsertShortcut triggers OnInsert from the keyboard.
var InsertShortcut = &desktop.CustomShortcut{
	KeyName:  fyne.KeyT,
	Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift,
}

// Window is a document editor. It implements tracker.Editor.
type Window struct {
	window    fyne.Window
	entry     *documentEntry
	callbacks Callbacks
	path      string
	dirty     bool
}

// New creates a hidden editor window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("RelStamp")
	editor := &Window{
		window:    window,
		callbacks: callbacks,
	}

	editor.entry = newDocumentEntry()
	editor.entry.SetPlaceHolder("Open a markdown document to start.")
	editor.entry.OnChanged = func(string) {
		editor.setDirty(true)
	}
	editor.entry.shortcuts[InsertShortcut.ShortcutName()] = editor.insert

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), editor.showOpenDialog),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), editor.saveAndReport),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), editor.insert),
		widget.NewToolbarAction(theme.ContentCopyIcon(), editor.saveSelection),
		widget.NewToolbarAction(theme.HistoryIcon(), editor.reset),
	)

	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, editor.entry))
	window.Canvas().AddShortcut(InsertShortcut, func(fyne.Shortcut) {
		editor.insert()
	})
	window.Resize(fyne.NewSize(640, 480))
	window.SetCloseIntercept(window.Hide)
	return editor
}

// Show displays the editor window.
func (editor *Window) Show() {
	editor.window.Show()
	editor.window.RequestFocus()
}

// Open loads the body of path into the editor and reports the new active document.
// Unsaved edits to the current document are written first; if that fails the
// current buffer stays open.
func (editor *Window) Open(path string) error {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := editor.SaveIfDirty(); err != nil {
		return fmt.Errorf("keep %s open: %w", filepath.Base(editor.path), err)
	}
	body, err := document.ReadBody(absolute)
	if err != nil {
		return err
	}

	editor.path = absolute
	editor.entry.SetText(body)
	editor.entry.CursorRow, editor.entry.CursorColumn = 0, 0
	editor.entry.Refresh()
	editor.setDirty(false)

	if editor.callbacks.OnOpened != nil {
		editor.callbacks.OnOpened(absolute)
	}
	return nil
}

// Save writes the body back, keeping the front matter on disk.
func (editor *Window) Save() error {
	if editor.path == "" {
		return ErrNoDocument
	}
	if err := document.WriteBody(editor.path, editor.entry.Text); err != nil {
		return err
	}
	editor.setDirty(false)
	return nil
}

// SaveIfDirty writes the body back when it has unsaved edits.
func (editor *Window) SaveIfDirty() error {
	if !editor.dirty || editor.path == "" {
		return nil
	}
	return editor.Save()
}

// Dirty reports whether the body has unsaved edits.
func (editor *Window) Dirty() bool {
	return editor.dirty
}

// ActiveDocument returns the path of the open document.
func (editor *Window) ActiveDocument() (string, bool) {
	return editor.path, editor.path != ""
}

// SelectedText returns the entry's selection.
func (editor *Window) SelectedText() (string, error) {
	return editor.entry.SelectedText(), nil
}

// ReplaceSelection inserts text at the cursor, replacing the selection.
func (editor *Window) ReplaceSelection(text string) error {
	updated, row, col := document.InsertAt(
		editor.entry.Text,
		editor.entry.CursorRow,
		editor.entry.CursorColumn,
		editor.entry.SelectedText(),
		text,
	)
	editor.entry.SetText(updated)
	editor.entry.CursorRow, editor.entry.CursorColumn = row, col
	editor.entry.Refresh()
	editor.setDirty(true)
	return nil
}

// Text returns the current body.
func (editor *Window) Text() string {
	return editor.entry.Text
}

// SetCursor moves the cursor to the zero-based row and column.
func (editor *Window) SetCursor(row, col int) {
	editor.entry.CursorRow, editor.entry.CursorColumn = row, col
	editor.entry.Refresh()
}

func (editor *Window) showOpenDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			editor.report(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		editor.report(editor.Open(path))
	}, editor.window)
}

func (editor *Window) saveAndReport() {
	editor.report(editor.Save())
}

func (editor *Window) insert() {
	if editor.callbacks.OnInsert != nil {
		editor.callbacks.OnInsert()
	}
}

func (editor *Window) saveSelection() {
	if editor.callbacks.OnSaveSelection != nil {
		editor.callbacks.OnSaveSelection()
	}
}

func (editor *Window) reset() {
	if editor.callbacks.OnReset != nil {
		editor.callbacks.OnReset()
	}
}

func (editor *Window) report(err error) {
	if err != nil && editor.callbacks.OnError != nil {
		editor.callbacks.OnError(err)
	}
}

func (editor *Window) setDirty(dirty bool) {
	editor.dirty = dirty
	title := "RelStamp"
	if editor.path != "" {
		title = filepath.Base(editor.path) + " - RelStamp"
	}
	if dirty && editor.path != "" {
		title = "*" + title
	}
	editor.window.SetTitle(title)
}

// documentEntry routes custom shortcuts before the entry's own handling.
type documentEntry struct {
	widget.Entry
	shortcuts map[string]func()
}

func newDocumentEntry() *documentEntry {
	entry := &documentEntry{shortcuts: map[string]func(){}}
	entry.MultiLine = true
	entry.Wrapping = fyne.TextWrapWord
	entry.ExtendBaseWidget(entry)
	return entry
}

func (entry *documentEntry) TypedShortcut(shortcut fyne.Shortcut) {
	if custom, ok := shortcut.(*desktop.CustomShortcut); ok {
		if handler := entry.shortcuts[custom.ShortcutName()]; handler != nil {
			handler()
			return
		}
	}
	entry.Entry.TypedShortcut(shortcut)
}
