package document

import "fmt"

// Position is a one-based line and column inside a document body.
// A zero Line means the end of the body.
type Position struct {
	Line   int
	Column int
}

// FileEditor is a headless editing surface over a single markdown file.
type FileEditor struct {
	path      string
	position  Position
	selection string
}

// NewFileEditor returns an editor focused on path at position with the given selection.
func NewFileEditor(path string, position Position, selection string) *FileEditor {
	return &FileEditor{path: path, position: position, selection: selection}
}

// ActiveDocument returns the file path.
func (editor *FileEditor) ActiveDocument() (string, bool) {
	return editor.path, editor.path != ""
}

// SelectedText returns the selection the editor was created with.
func (editor *FileEditor) SelectedText() (string, error) {
	return editor.selection, nil
}

// ReplaceSelection splices text into the body at the editor position.
func (editor *FileEditor) ReplaceSelection(text string) error {
	matter, body, err := Read(editor.path)
	if err != nil {
		return err
	}

	row, col := editor.cursor(string(body))
	updated, newRow, newCol := InsertAt(string(body), row, col, editor.selection, text)
	if err := Write(editor.path, matter, []byte(updated)); err != nil {
		return fmt.Errorf("insert into %s: %w", editor.path, err)
	}

	editor.selection = ""
	editor.position = Position{Line: newRow + 1, Column: newCol + 1}
	return nil
}

func (editor *FileEditor) cursor(body string) (int, int) {
	if editor.position.Line <= 0 {
		return positionOf([]rune(body), len([]rune(body)))
	}
	col := editor.position.Column - 1
	if col < 0 {
		col = 0
	}
	return editor.position.Line - 1, col
}
