package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	rserrors "github.com/arthur-debert/rulesync/pkg/errors"
)

//go:embed defaults.toml
var defaultSettings []byte

// Settings holds the tool's own configuration, distinct from any
// project's dependency manifests.
type Settings struct {
	// DefaultRepo is the repository used when a command omits --repo.
	DefaultRepo string `koanf:"default_repo" toml:"default_repo"`
	// DataDir overrides where clones and the repo registry live.
	DataDir string `koanf:"data_dir" toml:"data_dir"`
	// Color controls colored terminal output: auto, always, never.
	Color string `koanf:"color" toml:"color"`
}

// SettingsPath returns the location of the settings file.
func SettingsPath() string {
	return filepath.Join(xdg.ConfigHome, "rulesync", "rulesync.toml")
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadSettings layers embedded defaults, the settings file (when
// present), and RULESYNC_* environment variables, in that order.
func LoadSettings() (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, rserrors.Wrap(err, rserrors.ErrConfigLoad, "failed to load default settings")
	}

	path := SettingsPath()
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, rserrors.Wrapf(err, rserrors.ErrConfigLoad, "failed to load settings from %s", path)
		}
	}

	if err := k.Load(env.Provider("RULESYNC_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "RULESYNC_"))
	}), nil); err != nil {
		return nil, rserrors.Wrap(err, rserrors.ErrConfigLoad, "failed to load settings from environment")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, rserrors.Wrap(err, rserrors.ErrConfigParse, "failed to decode settings")
	}
	return &settings, nil
}

// WriteDefaultSettings creates the settings file with the embedded
// defaults plus any values already set, used by first-run setup. An
// existing file is left alone.
func WriteDefaultSettings(settings *Settings) (string, error) {
	path := SettingsPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", rserrors.Wrap(err, rserrors.ErrDirCreate, "failed to create settings directory")
	}
	data, err := gotoml.Marshal(settings)
	if err != nil {
		return "", rserrors.Wrap(err, rserrors.ErrInternal, "failed to encode settings")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", rserrors.Wrap(err, rserrors.ErrFileWrite, "failed to write settings file")
	}
	return path, nil
}
