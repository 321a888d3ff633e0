package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rulesync/pkg/filesystem"
)

func newEditor(t *testing.T) (*Editor, string) {
	t.Helper()
	return NewEditor(filesystem.NewOS()), filepath.Join(t.TempDir(), ".gitignore")
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEditor_Add(t *testing.T) {
	editor, path := newEditor(t)

	require.NoError(t, editor.Add(path, ".cursor/rules/react"))
	assert.Equal(t, Header+"\n.cursor/rules/react\n", read(t, path))

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, editor.Add(path, ".cursor/rules/react"))
		assert.Equal(t, Header+"\n.cursor/rules/react\n", read(t, path))
	})

	t.Run("header is written once", func(t *testing.T) {
		require.NoError(t, editor.Add(path, ".cursor/rules/testing"))
		assert.Equal(t, Header+"\n.cursor/rules/react\n.cursor/rules/testing\n", read(t, path))
	})
}

func TestEditor_AddPreservesExistingContent(t *testing.T) {
	editor, path := newEditor(t)
	require.NoError(t, os.WriteFile(path, []byte("node_modules/\ndist/\n"), 0o644))

	require.NoError(t, editor.Add(path, ".cursor/rules/react"))
	assert.Equal(t, "node_modules/\ndist/\n"+Header+"\n.cursor/rules/react\n", read(t, path))
}

func TestEditor_AddCreatesParentDir(t *testing.T) {
	editor := NewEditor(filesystem.NewOS())
	path := filepath.Join(t.TempDir(), ".git", "info", "exclude")

	require.NoError(t, editor.Add(path, ".cursor/rules/react"))
	assert.Contains(t, read(t, path), ".cursor/rules/react")
}

func TestEditor_Remove(t *testing.T) {
	editor, path := newEditor(t)
	require.NoError(t, editor.Add(path, ".cursor/rules/react"))
	require.NoError(t, editor.Add(path, ".cursor/rules/testing"))

	require.NoError(t, editor.Remove(path, ".cursor/rules/react"))
	assert.Equal(t, Header+"\n.cursor/rules/testing\n", read(t, path))

	t.Run("missing line is a no-op", func(t *testing.T) {
		require.NoError(t, editor.Remove(path, ".cursor/rules/ghost"))
		assert.Equal(t, Header+"\n.cursor/rules/testing\n", read(t, path))
	})

	t.Run("orphaned header is dropped", func(t *testing.T) {
		require.NoError(t, editor.Remove(path, ".cursor/rules/testing"))
		assert.Equal(t, "", read(t, path))
	})

	t.Run("missing file is a no-op", func(t *testing.T) {
		require.NoError(t, editor.Remove(filepath.Join(t.TempDir(), "none"), "x"))
	})
}

func TestEditor_RemoveKeepsUnmanagedLines(t *testing.T) {
	editor, path := newEditor(t)
	require.NoError(t, os.WriteFile(path, []byte("dist/\n"), 0o644))
	require.NoError(t, editor.Add(path, ".cursor/rules/react"))

	require.NoError(t, editor.Remove(path, ".cursor/rules/react"))
	content := read(t, path)
	assert.Contains(t, content, "dist/")
	assert.NotContains(t, content, ".cursor/rules/react")
}

func TestEditor_Has(t *testing.T) {
	editor, path := newEditor(t)

	has, err := editor.Has(path, ".cursor/rules/react")
	require.NoError(t, err)
	assert.False(t, has, "missing file has nothing")

	require.NoError(t, editor.Add(path, ".cursor/rules/react"))
	has, err = editor.Has(path, ".cursor/rules/react")
	require.NoError(t, err)
	assert.True(t, has)
}
