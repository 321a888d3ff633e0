package adapters

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/filesystem"
	"github.com/arthur-debert/rulesync/pkg/testutil"
)

const validSkillMD = `---
name: pdf-tools
description: Extract text and tables from PDF files.
---

# PDF tools

Instructions body.
`

func TestParseSkillManifest(t *testing.T) {
	t.Run("valid frontmatter", func(t *testing.T) {
		manifest, err := ParseSkillManifest([]byte(validSkillMD))
		require.NoError(t, err)
		assert.Equal(t, "pdf-tools", manifest.Name)
		assert.Equal(t, "Extract text and tables from PDF files.", manifest.Description)
	})

	t.Run("windows line endings", func(t *testing.T) {
		manifest, err := ParseSkillManifest([]byte("---\r\nname: x\r\ndescription: y\r\n---\r\nbody"))
		require.NoError(t, err)
		assert.Equal(t, "x", manifest.Name)
	})

	t.Run("no frontmatter", func(t *testing.T) {
		_, err := ParseSkillManifest([]byte("# just markdown"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		_, err := ParseSkillManifest([]byte("---\nname: x\n"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseSkillManifest([]byte("---\n\t:bad\n---\n"))
		assert.Error(t, err)
	})
}

func TestValidateSkill(t *testing.T) {
	fs := filesystem.NewOS()

	t.Run("valid skill directory", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		dir := filepath.Dir(env.WriteProjectFile(".claude/skills/pdf/SKILL.md", validSkillMD))
		assert.NoError(t, ValidateSkill(fs, dir))
	})

	t.Run("missing SKILL.md", func(t *testing.T) {
		assert.True(t, errors.IsErrorCode(ValidateSkill(fs, t.TempDir()), errors.ErrInvalidInput))
	})

	t.Run("frontmatter missing description", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t)
		dir := filepath.Dir(env.WriteProjectFile(
			".claude/skills/broken/SKILL.md", "---\nname: broken\n---\nbody"))
		err := ValidateSkill(fs, dir)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}
