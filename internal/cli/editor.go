package cli

import "relstamp/internal/document"

// sessionEditor exposes the session's active document as a tracker.Editor.
type sessionEditor struct {
	session   *Session
	position  document.Position
	selection string
}

func (editor *sessionEditor) ActiveDocument() (string, bool) {
	return editor.session.ActiveDocument, editor.session.ActiveDocument != ""
}

func (editor *sessionEditor) SelectedText() (string, error) {
	return editor.selection, nil
}

func (editor *sessionEditor) ReplaceSelection(text string) error {
	return document.NewFileEditor(editor.session.ActiveDocument, editor.position, editor.selection).ReplaceSelection(text)
}
