package storagefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRealRoundTripsThroughOSFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "db")

	fsys := NewReal()

	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)

	_, err = f.WriteAt([]byte("hello"), 0)
	require.NoError(t, err)
	require.NoError(t, f.Sync())

	size, err := f.Size()
	require.NoError(t, err)
	require.EqualValues(t, 5, size)

	buf := make([]byte, 5)
	_, err = f.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf))

	require.NoError(t, f.Close())

	newPath := filepath.Join(dir, "db2")
	require.NoError(t, fsys.Rename(path, newPath))
	require.NoError(t, fsys.Remove(newPath))
}

func TestMemFSOpenFileCreatesOnDemand(t *testing.T) {
	fsys := NewMemFS()

	_, err := fsys.OpenFile("/missing", os.O_RDWR, 0)
	require.ErrorIs(t, err, os.ErrNotExist)

	f, err := fsys.OpenFile("/a", os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)

	_, err = f.WriteAt([]byte("xyz"), 0)
	require.NoError(t, err)

	f2, err := fsys.OpenFile("/a", os.O_RDWR, 0o644)
	require.NoError(t, err)

	buf := make([]byte, 3)
	_, err = f2.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "xyz", string(buf))
}

func TestMemFSFailOpenFiresOnceThenClears(t *testing.T) {
	fsys := NewMemFS()
	fsys.FailOpen = ErrInjected

	_, err := fsys.OpenFile("/a", os.O_RDWR|os.O_CREATE, 0o644)
	require.ErrorIs(t, err, ErrInjected)

	_, err = fsys.OpenFile("/a", os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
}

func TestMemFSFailWriteAtTargetsNthCall(t *testing.T) {
	fsys := NewMemFS()

	f, err := fsys.OpenFile("/a", os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)

	fsys.FailWriteAt("/a", 2)

	_, err = f.WriteAt([]byte("1"), 0)
	require.NoError(t, err)

	_, err = f.WriteAt([]byte("2"), 1)
	require.ErrorIs(t, err, ErrInjected)

	_, err = f.WriteAt([]byte("3"), 2)
	require.NoError(t, err)
}

func TestMemFSRenameAndRemove(t *testing.T) {
	fsys := NewMemFS()

	_, err := fsys.OpenFile("/a", os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)

	require.NoError(t, fsys.Rename("/a", "/b"))

	_, err = fsys.OpenFile("/a", os.O_RDWR, 0o644)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = fsys.OpenFile("/b", os.O_RDWR, 0o644)
	require.NoError(t, err)

	require.NoError(t, fsys.Remove("/b"))
	require.ErrorIs(t, fsys.Remove("/b"), os.ErrNotExist)
}
