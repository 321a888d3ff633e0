package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rulesync/pkg/logging"
	"github.com/arthur-debert/rulesync/pkg/types"
)

// Header is the comment line written before the first managed entry.
const Header = "# managed by rulesync"

// Editor performs idempotent line-based edits against gitignore-style
// files. Matching is by exact line content after trimming surrounding
// whitespace.
type Editor struct {
	fs types.FS
}

// NewEditor creates an Editor over the given filesystem.
func NewEditor(fs types.FS) *Editor {
	return &Editor{fs: fs}
}

// Add appends line to the file at path unless an identical line is
// already present. The file is created if missing; the header comment
// is written once, before the first managed entry.
func (e *Editor) Add(path, line string) error {
	logger := logging.GetLogger("ignore")
	line = strings.TrimSpace(line)

	lines, existed, err := e.readLines(path)
	if err != nil {
		return err
	}

	for _, l := range lines {
		if strings.TrimSpace(l) == line {
			logger.Debug().Str("file", path).Str("line", line).Msg("ignore entry already present")
			return nil
		}
	}

	if !e.hasHeader(lines) {
		lines = append(lines, Header)
	}
	lines = append(lines, line)

	if !existed {
		if err := e.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
	}
	return e.writeLines(path, lines)
}

// Remove deletes any line matching the given content. A missing file
// or absent line is a no-op.
func (e *Editor) Remove(path, line string) error {
	line = strings.TrimSpace(line)

	lines, existed, err := e.readLines(path)
	if err != nil {
		return err
	}
	if !existed {
		return nil
	}

	kept := lines[:0]
	removed := false
	for _, l := range lines {
		if strings.TrimSpace(l) == line {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	if !removed {
		return nil
	}

	// Drop a now-orphaned header so repeated add/remove cycles leave
	// the file as it started.
	if len(kept) > 0 && e.onlyHeaderRemains(kept) {
		kept = kept[:0]
	}

	return e.writeLines(path, kept)
}

// Has reports whether the file contains the line.
func (e *Editor) Has(path, line string) (bool, error) {
	line = strings.TrimSpace(line)
	lines, existed, err := e.readLines(path)
	if err != nil || !existed {
		return false, err
	}
	for _, l := range lines {
		if strings.TrimSpace(l) == line {
			return true, nil
		}
	}
	return false, nil
}

func (e *Editor) hasHeader(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) == Header {
			return true
		}
	}
	return false
}

// onlyHeaderRemains is true when every non-blank line left is the header.
func (e *Editor) onlyHeaderRemains(lines []string) bool {
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed != "" && trimmed != Header {
			return false
		}
	}
	return true
}

func (e *Editor) readLines(path string) (lines []string, existed bool, err error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	content := strings.TrimRight(string(data), "\n")
	if content == "" {
		return nil, true, nil
	}
	return strings.Split(content, "\n"), true, nil
}

func (e *Editor) writeLines(path string, lines []string) error {
	if len(lines) == 0 {
		return e.fs.WriteFile(path, []byte{}, 0644)
	}
	return e.fs.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}
