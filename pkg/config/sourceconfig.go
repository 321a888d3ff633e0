package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rulesync/pkg/errors"
	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// SourceConfigFile is the per-repository configuration file at the
// source repository root.
const SourceConfigFile = "rulesync.config.json"

// SourceConfig describes where a source repository keeps its entries:
// an optional global prefix plus per tool/subtype directory overrides.
type SourceConfig struct {
	RootPath  string                       `json:"rootPath,omitempty"`
	SourceDir map[string]map[string]string `json:"sourceDir,omitempty"`
}

// EffectiveDir resolves the directory holding the adapter's entries,
// relative to the repository root.
func (c *SourceConfig) EffectiveDir(adapter *types.Adapter) string {
	dir := adapter.DefaultSourceDir
	if c != nil {
		if subtypes, ok := c.SourceDir[adapter.Tool]; ok {
			if override, ok := subtypes[adapter.Subtype]; ok && override != "" {
				dir = override
			}
		}
	}
	if c != nil && c.RootPath != "" {
		return filepath.Join(c.RootPath, dir)
	}
	return dir
}

// LoadSourceConfig reads the repository's source configuration,
// accepting both the nested sourceDir form and the legacy flat form
// that stores override strings directly under tool.subtype. A missing
// file yields an empty config.
//
// The legacy form shares its shape with a project dependency manifest;
// the two are told apart purely by the static type of the value at
// tool.subtype: a bare string is a directory override, an object is an
// alias-keyed dependency section and is not ours to interpret here.
func LoadSourceConfig(fs types.FS, repoDir string) (*SourceConfig, error) {
	path := filepath.Join(repoDir, SourceConfigFile)
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &SourceConfig{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read %s", path)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", path)
	}

	cfg := &SourceConfig{}
	if rootRaw, ok := raw["rootPath"]; ok {
		if err := json.Unmarshal(rootRaw, &cfg.RootPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "rootPath must be a string in %s", path)
		}
	}
	if dirRaw, ok := raw["sourceDir"]; ok {
		if err := json.Unmarshal(dirRaw, &cfg.SourceDir); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "sourceDir must map tool.subtype to strings in %s", path)
		}
	}

	// Legacy flat overrides live at the top level alongside rootPath.
	logger := logging.GetLogger("config.source")
	for tool, toolRaw := range raw {
		if tool == "rootPath" || tool == "sourceDir" {
			continue
		}
		var subtypes map[string]json.RawMessage
		if err := json.Unmarshal(toolRaw, &subtypes); err != nil {
			continue
		}
		for subtype, valueRaw := range subtypes {
			var override string
			if err := json.Unmarshal(valueRaw, &override); err != nil {
				// Object value: an alias-keyed dependency section,
				// not a directory override.
				continue
			}
			if cfg.lookup(tool, subtype) != "" {
				// Nested form wins when both are present.
				continue
			}
			logger.Debug().
				Str("tool", tool).
				Str("subtype", subtype).
				Str("dir", override).
				Msg("read legacy flat sourceDir override")
			cfg.setOverride(tool, subtype, override)
		}
	}

	return cfg, nil
}

// WriteSourceConfig writes the configuration in the unambiguous nested
// form. Rewriting a legacy file through this path is the one-way
// migration recommended for the flat shape.
func WriteSourceConfig(fs types.FS, repoDir string, cfg *SourceConfig) error {
	path := filepath.Join(repoDir, SourceConfigFile)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to encode %s", path)
	}
	data = append(data, '\n')
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

func (c *SourceConfig) lookup(tool, subtype string) string {
	if subtypes, ok := c.SourceDir[tool]; ok {
		return subtypes[subtype]
	}
	return ""
}

func (c *SourceConfig) setOverride(tool, subtype, dir string) {
	if c.SourceDir == nil {
		c.SourceDir = make(map[string]map[string]string)
	}
	if c.SourceDir[tool] == nil {
		c.SourceDir[tool] = make(map[string]string)
	}
	c.SourceDir[tool][subtype] = dir
}
