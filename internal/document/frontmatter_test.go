package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWithoutFrontMatter(t *testing.T) {
	matter, body, err := Split([]byte("# Title\n\ntext\n"))
	require.NoError(t, err)
	assert.False(t, matter.Present())
	assert.Equal(t, "# Title\n\ntext\n", string(body))

	_, ok := matter.Get("lasttime")
	assert.False(t, ok)
}

func TestSplitReadsFields(t *testing.T) {
	content := "---\ntitle: Standup\nlasttime: 20240101090000\ntags: [a, b]\n---\n# Notes\n"
	matter, body, err := Split([]byte(content))
	require.NoError(t, err)

	assert.True(t, matter.Present())
	assert.Equal(t, "# Notes\n", string(body))
	value, ok := matter.Get("lasttime")
	assert.True(t, ok)
	assert.Equal(t, "20240101090000", value)

	_, ok = matter.Get("tags")
	assert.False(t, ok, "sequences are not scalar fields")
}

func TestSplitHandlesCRLFAndEmptyBlock(t *testing.T) {
	matter, body, err := Split([]byte("---\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	assert.True(t, matter.Present())
	assert.Equal(t, "body\r\n", string(body))
}

func TestSplitUnterminatedBlockIsBody(t *testing.T) {
	content := "---\ntitle: draft\n"
	matter, body, err := Split([]byte(content))
	require.NoError(t, err)
	assert.False(t, matter.Present())
	assert.Equal(t, content, string(body))
}

func TestSplitRejectsNonMapping(t *testing.T) {
	_, _, err := Split([]byte("---\n- a\n- b\n---\nbody\n"))
	assert.ErrorIs(t, err, ErrInvalidFrontMatter)
}

func TestSetKeepsOtherKeysAndBody(t *testing.T) {
	content := "---\ntitle: Standup\nlasttime: \"20231231235959\"\n---\n# Notes\n"
	matter, body, err := Split([]byte(content))
	require.NoError(t, err)

	matter.Set("lasttime", "20240101150000")
	out, err := Join(matter, body)
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Standup\nlasttime: \"20240101150000\"\n---\n# Notes\n", string(out))
}

func TestSetCreatesBlock(t *testing.T) {
	matter, body, err := Split([]byte("plain text\n"))
	require.NoError(t, err)

	matter.Set("lasttime", "20240101150000")
	out, err := Join(matter, body)
	require.NoError(t, err)
	assert.Equal(t, "---\nlasttime: \"20240101150000\"\n---\nplain text\n", string(out))
}

func TestJoinUnmodifiedKeepsOriginalText(t *testing.T) {
	content := "---\ntitle:    spaced   # comment\n---\nbody\n"
	matter, body, err := Split([]byte(content))
	require.NoError(t, err)

	out, err := Join(matter, body)
	require.NoError(t, err)
	assert.Equal(t, content, string(out))
}
