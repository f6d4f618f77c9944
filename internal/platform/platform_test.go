package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	got, err := ConfigDir("RelStamp")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestConfigDirDefault(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	got, err := ConfigDir("RelStamp")
	require.NoError(t, err)
	assert.Equal(t, "RelStamp", filepath.Base(got))
}

func TestSingleInstance(t *testing.T) {
	name := "relstamp-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	defer guard.Release()
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(name)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	require.NoError(t, guard.Release())
	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestSignalRunning(t *testing.T) {
	name := "relstamp-test-" + t.Name()
	guard, err := AcquireSingleInstance(name)
	require.NoError(t, err)

	requests := make(chan string, 1)
	go guard.Serve(func(request string) {
		requests <- request
	})

	require.NoError(t, SignalRunning(name, "open /tmp/note.md"))
	assert.Equal(t, "open /tmp/note.md", <-requests)
	require.NoError(t, guard.Release())
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, WriteFileAtomic(path, []byte("first\n"), 0o644))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("second\n"), 0o644))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(raw))
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	assert.Error(t, WriteFileAtomic(filepath.Join(dir, "missing", "x.yaml"), []byte("x"), 0o644))
}
