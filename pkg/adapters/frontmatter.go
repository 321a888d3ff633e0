package adapters

import (
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// SkillManifest is the YAML frontmatter at the top of a skill's
// SKILL.md file.
type SkillManifest struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ValidateSkill checks that a skill directory carries a SKILL.md with
// well-formed frontmatter before it is imported into a repository.
func ValidateSkill(fs types.FS, path string) error {
	manifestPath := filepath.Join(path, "SKILL.md")
	data, err := fs.ReadFile(manifestPath)
	if err != nil {
		return errors.Newf(errors.ErrInvalidInput,
			"skill at %s has no SKILL.md", path)
	}

	manifest, err := ParseSkillManifest(data)
	if err != nil {
		return err
	}
	if manifest.Name == "" || manifest.Description == "" {
		return errors.Newf(errors.ErrInvalidInput,
			"SKILL.md frontmatter in %s must set name and description", path)
	}
	return nil
}

// ParseSkillManifest extracts the YAML frontmatter from SKILL.md
// content. The frontmatter is delimited by "---" lines at the top of
// the file.
func ParseSkillManifest(data []byte) (*SkillManifest, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return nil, errors.New(errors.ErrInvalidInput,
			"SKILL.md must start with a YAML frontmatter block")
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, errors.New(errors.ErrInvalidInput,
			"SKILL.md frontmatter is not terminated")
	}

	var manifest SkillManifest
	if err := yaml.Unmarshal([]byte(rest[:end]), &manifest); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput,
			"SKILL.md frontmatter is not valid YAML")
	}
	return &manifest, nil
}
