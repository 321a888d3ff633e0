package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rulesync/pkg/types"
)

func TestFileOperations(t *testing.T) {
	impls := []struct {
		name string
		fs   func(t *testing.T) (types.FS, string)
	}{
		{"os", func(t *testing.T) (types.FS, string) {
			return NewOS(), t.TempDir()
		}},
		{"afero-memmap", func(t *testing.T) (types.FS, string) {
			return NewAferoFS(afero.NewMemMapFs()), "/work"
		}},
	}

	for _, impl := range impls {
		t.Run(impl.name, func(t *testing.T) {
			fs, root := impl.fs(t)

			dir := filepath.Join(root, "a", "b")
			require.NoError(t, fs.MkdirAll(dir, 0o755))

			path := filepath.Join(dir, "file.txt")
			require.NoError(t, fs.WriteFile(path, []byte("content"), 0o644))

			data, err := fs.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "content", string(data))

			info, err := fs.Stat(path)
			require.NoError(t, err)
			assert.False(t, info.IsDir())

			entries, err := fs.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "file.txt", entries[0].Name())

			renamed := filepath.Join(dir, "renamed.txt")
			require.NoError(t, fs.Rename(path, renamed))
			_, err = fs.Stat(path)
			assert.Error(t, err)

			require.NoError(t, fs.Remove(renamed))
			require.NoError(t, fs.RemoveAll(filepath.Join(root, "a")))
		})
	}
}

func TestOSSymlink(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()

	target := filepath.Join(dir, "target.txt")
	require.NoError(t, fs.WriteFile(target, []byte("x"), 0o644))

	link := filepath.Join(dir, "link")
	require.NoError(t, fs.Symlink(target, link))

	dest, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}

func TestAferoSymlinkSimulation(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fs.WriteFile("/target.txt", []byte("x"), 0o644))
	require.NoError(t, fs.Symlink("/target.txt", "/link"))

	dest, err := fs.Readlink("/link")
	require.NoError(t, err)
	assert.Equal(t, "/target.txt", dest)
}
