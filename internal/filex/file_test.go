package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesMissingDirs(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "state", "gophblog", "session.db")

	got, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	fi, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}

	_, err = os.Stat(target)
	require.ErrorIs(t, err, os.ErrNotExist, "only the directory is created")
}

func TestEnsureParentDir_RelativeAndIdempotent(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)

	first, err := EnsureParentDir("gophblog.db")
	require.NoError(t, err)
	second, err := EnsureParentDir("gophblog.db")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.True(t, filepath.IsAbs(first))
}

func TestEnsureParentDir_ParentIsAFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "session.db"))
	require.Error(t, err)
}
