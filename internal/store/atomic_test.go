package store

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type failingRename struct {
	afero.Fs
	renames int
}

func (f *failingRename) Rename(oldname, newname string) error {
	f.renames++
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: errors.New("device busy")}
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, storePath, []byte("old"), 0o600))

	require.NoError(t, writeFileAtomic(fs, storePath, []byte("new"), 0))

	data, err := afero.ReadFile(fs, storePath)
	require.NoError(t, err)
	require.Equal(t, "new", string(data))

	st, err := fs.Stat(storePath)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), st.Mode().Perm())
}

func TestWriteFileAtomicFailedRenameKeepsFile(t *testing.T) {
	for _, removeFirst := range []bool{false, true} {
		orig := removeBeforeRename
		removeBeforeRename = removeFirst

		base := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(base, storePath, []byte("old"), 0o644))
		fs := &failingRename{Fs: base}

		err := writeFileAtomic(fs, storePath, []byte("new"), 0)
		removeBeforeRename = orig
		require.Error(t, err)

		if removeFirst {
			require.Equal(t, 2, fs.renames)
			continue
		}
		require.Equal(t, 1, fs.renames)
		data, err := afero.ReadFile(base, storePath)
		require.NoError(t, err)
		require.Equal(t, "old", string(data))

		entries, err := afero.ReadDir(base, "/config")
		require.NoError(t, err)
		require.Len(t, entries, 1, "temp file is cleaned up")
	}
}
