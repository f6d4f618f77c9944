package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"relstamp/internal/core/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMetadataStoreReadField(t *testing.T) {
	store := NewMetadataStore()
	path := writeDoc(t, "---\nlasttime: 20240101090000\n---\nbody\n")

	value, err := store.ReadField(context.Background(), path, "lasttime")
	require.NoError(t, err)
	assert.Equal(t, "20240101090000", value)

	_, err = store.ReadField(context.Background(), path, "missing")
	assert.ErrorIs(t, err, tracker.ErrNoMetadata)

	_, err = store.ReadField(context.Background(), filepath.Join(t.TempDir(), "absent.md"), "lasttime")
	assert.ErrorIs(t, err, tracker.ErrNoMetadata)
}

func TestMetadataStoreWriteFieldKeepsBodyAndMode(t *testing.T) {
	store := NewMetadataStore()
	path := writeDoc(t, "# Log\n\n- item\n")

	require.NoError(t, store.WriteField(context.Background(), path, "lasttime", "20240101150000"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\nlasttime: \"20240101150000\"\n---\n# Log\n\n- item\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteBodyKeepsFrontMatter(t *testing.T) {
	path := writeDoc(t, "---\nlasttime: \"20240101090000\"\n---\nold\n")

	require.NoError(t, WriteBody(path, "new body\n"))
	body, err := ReadBody(path)
	require.NoError(t, err)
	assert.Equal(t, "new body\n", body)

	value, err := NewMetadataStore().ReadField(context.Background(), path, "lasttime")
	require.NoError(t, err)
	assert.Equal(t, "20240101090000", value)
}

func TestFileEditorInsertsIntoBody(t *testing.T) {
	path := writeDoc(t, "---\nlasttime: \"20240101090000\"\n---\nline one\nline two\n")
	editor := NewFileEditor(path, Position{Line: 2, Column: 5}, "")

	document, ok := editor.ActiveDocument()
	assert.True(t, ok)
	assert.Equal(t, path, document)

	require.NoError(t, editor.ReplaceSelection("[03:00 PM]"))
	body, err := ReadBody(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline[03:00 PM] two\n", body)
}

func TestFileEditorAppendsAtEnd(t *testing.T) {
	path := writeDoc(t, "first\n")
	editor := NewFileEditor(path, Position{}, "")

	require.NoError(t, editor.ReplaceSelection("03:00 PM"))
	require.NoError(t, editor.ReplaceSelection(" again"))
	body, err := ReadBody(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n03:00 PM again", body)
}

func TestFileEditorReplacesSelection(t *testing.T) {
	path := writeDoc(t, "started 09:30 AM\n")
	editor := NewFileEditor(path, Position{Line: 1, Column: 17}, "09:30 AM")

	selection, err := editor.SelectedText()
	require.NoError(t, err)
	assert.Equal(t, "09:30 AM", selection)

	require.NoError(t, editor.ReplaceSelection("5 hours ago"))
	body, err := ReadBody(path)
	require.NoError(t, err)
	assert.Equal(t, "started 5 hours ago\n", body)
}
