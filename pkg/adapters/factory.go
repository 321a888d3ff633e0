package adapters

import (
	"fmt"

	"github.com/arthur-debert/rulesync/pkg/engine"
	"github.com/arthur-debert/rulesync/pkg/registry"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Config declares one adapter. The factory fills in the uniform
// behavior so each entry kind is a handful of fields, not a new
// implementation of the sync flow.
type Config struct {
	Tool             string
	Subtype          string
	DefaultSourceDir string
	TargetDir        string
	Mode             types.Mode
	FileSuffixes     []string

	// Optional hook overrides. File-mode adapters that leave these nil
	// get suffix-aware resolution built from FileSuffixes.
	ResolveSource     types.ResolveSourceFunc
	ResolveTargetName types.ResolveTargetNameFunc
	ValidateImport    types.ValidateImportFunc
}

// New builds an adapter from its declarative config.
func New(cfg Config) *types.Adapter {
	adapter := &types.Adapter{
		Tool:              cfg.Tool,
		Subtype:           cfg.Subtype,
		ConfigPath:        [2]string{cfg.Tool, cfg.Subtype},
		DefaultSourceDir:  cfg.DefaultSourceDir,
		TargetDir:         cfg.TargetDir,
		Mode:              cfg.Mode,
		FileSuffixes:      cfg.FileSuffixes,
		ResolveSource:     cfg.ResolveSource,
		ResolveTargetName: cfg.ResolveTargetName,
		ValidateImport:    cfg.ValidateImport,
	}

	if adapter.Mode == types.ModeFile {
		suffixes := adapter.FileSuffixes
		if adapter.ResolveSource == nil {
			adapter.ResolveSource = func(fs types.FS, repoDir, sourceDir, name string) (types.ResolvedSource, error) {
				return engine.ResolveFileSource(fs, repoDir, sourceDir, name, suffixes)
			}
		}
		if adapter.ResolveTargetName == nil {
			adapter.ResolveTargetName = func(name, alias, sourceSuffix string) string {
				return engine.FileTargetName(name, alias, sourceSuffix, suffixes)
			}
		}
	}

	return adapter
}

// MustRegister builds and registers an adapter, panicking on conflict.
// Meant for init() functions where a duplicate key is a programming
// error.
func MustRegister(cfg Config) {
	if err := registry.RegisterAdapter(New(cfg)); err != nil {
		panic(fmt.Sprintf("failed to register adapter %s/%s: %v", cfg.Tool, cfg.Subtype, err))
	}
}
