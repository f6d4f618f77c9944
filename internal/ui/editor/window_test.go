package editor

import (
	"os"
	"path/filepath"
	"testing"

	"relstamp/internal/document"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInsertSave(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte("---\nlasttime: \"20240101090000\"\n---\nline one\nline two"), 0o644))

	var opened []string
	editor := New(app, Callbacks{OnOpened: func(path string) {
		opened = append(opened, path)
	}})

	_, ok := editor.ActiveDocument()
	assert.False(t, ok)

	require.NoError(t, editor.Open(path))
	require.Len(t, opened, 1)
	document, ok := editor.ActiveDocument()
	assert.True(t, ok)
	assert.Equal(t, opened[0], document)
	assert.Equal(t, "line one\nline two", editor.Text())

	editor.SetCursor(1, 4)
	require.NoError(t, editor.ReplaceSelection(" (03:00 PM)"))
	assert.Equal(t, "line one\nline (03:00 PM) two", editor.Text())
	assert.True(t, editor.dirty)

	require.NoError(t, editor.Save())
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\nlasttime: \"20240101090000\"\n---\nline one\nline (03:00 PM) two", string(raw))
	assert.False(t, editor.dirty)
}

func TestSaveWithoutDocument(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	editor := New(app, Callbacks{})
	assert.ErrorIs(t, editor.Save(), ErrNoDocument)
}

func TestInsertShortcutRoutesToCallback(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	inserts := 0
	editor := New(app, Callbacks{OnInsert: func() { inserts++ }})
	editor.entry.TypedShortcut(InsertShortcut)
	assert.Equal(t, 1, inserts)
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	editor := New(app, Callbacks{})
	path := filepath.Join(t.TempDir(), "new.md")
	require.NoError(t, editor.Open(path))
	assert.Empty(t, editor.Text())

	require.NoError(t, editor.ReplaceSelection("03:00 PM"))
	require.NoError(t, editor.Save())
	body, err := document.ReadBody(path)
	require.NoError(t, err)
	assert.Equal(t, "03:00 PM", body)
}

func TestOpenSavesDirtyDocumentFirst(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(first, []byte("---\nlasttime: \"20240101150000\"\n---\noriginal a"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("b body"), 0o644))

	editor := New(app, Callbacks{})
	require.NoError(t, editor.Open(first))
	editor.SetCursor(0, len("original a"))
	require.NoError(t, editor.ReplaceSelection(" 03:00 PM (3 hours ago)"))
	require.True(t, editor.Dirty())

	require.NoError(t, editor.Open(second))
	assert.Equal(t, "b body", editor.Text())
	assert.False(t, editor.Dirty())

	raw, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "---\nlasttime: \"20240101150000\"\n---\noriginal a 03:00 PM (3 hours ago)", string(raw))
}

func TestOpenKeepsDirtyDocumentWhenSaveFails(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	firstDir := t.TempDir()
	first := filepath.Join(firstDir, "a.md")
	second := filepath.Join(t.TempDir(), "b.md")
	require.NoError(t, os.WriteFile(first, []byte("original a"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("b body"), 0o644))

	var opened []string
	editor := New(app, Callbacks{OnOpened: func(path string) {
		opened = append(opened, path)
	}})
	require.NoError(t, editor.Open(first))
	editor.SetCursor(0, len("original a"))
	require.NoError(t, editor.ReplaceSelection(" 03:00 PM"))
	require.NoError(t, os.RemoveAll(firstDir))

	assert.Error(t, editor.Open(second))
	assert.Equal(t, "original a 03:00 PM", editor.Text())
	assert.True(t, editor.Dirty())
	active, ok := editor.ActiveDocument()
	assert.True(t, ok)
	assert.Equal(t, first, active)
	assert.Len(t, opened, 1)
}

func TestSaveIfDirtySkipsCleanDocument(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	path := filepath.Join(t.TempDir(), "never-written.md")
	editor := New(app, Callbacks{})
	require.NoError(t, editor.SaveIfDirty())

	require.NoError(t, editor.Open(path))
	require.NoError(t, editor.SaveIfDirty())
	assert.NoFileExists(t, path)
}
