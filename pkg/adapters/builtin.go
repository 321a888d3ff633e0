package adapters

import "github.com/arthur-debert/rulesync/pkg/types"

// Built-in adapters cover the official on-disk layouts of the tools we
// sync for. Source repositories mirror the consumer-side layout, so
// the default source dir matches the target dir.
func init() {
	MustRegister(Config{
		Tool:             "cursor",
		Subtype:          "rules",
		DefaultSourceDir: ".cursor/rules",
		TargetDir:        ".cursor/rules",
		Mode:             types.ModeDirectory,
	})

	MustRegister(Config{
		Tool:             "cursor",
		Subtype:          "commands",
		DefaultSourceDir: ".cursor/commands",
		TargetDir:        ".cursor/commands",
		Mode:             types.ModeFile,
		FileSuffixes:     []string{".md"},
	})

	MustRegister(Config{
		Tool:             "github",
		Subtype:          "instructions",
		DefaultSourceDir: ".github/instructions",
		TargetDir:        ".github/instructions",
		Mode:             types.ModeFile,
		FileSuffixes:     []string{".instructions.md", ".md"},
	})

	MustRegister(Config{
		Tool:             "claude",
		Subtype:          "skills",
		DefaultSourceDir: ".claude/skills",
		TargetDir:        ".claude/skills",
		Mode:             types.ModeDirectory,
		ValidateImport:   ValidateSkill,
	})

	MustRegister(Config{
		Tool:             "claude",
		Subtype:          "agents",
		DefaultSourceDir: ".claude/agents",
		TargetDir:        ".claude/agents",
		Mode:             types.ModeFile,
		FileSuffixes:     []string{".md"},
	})
}
