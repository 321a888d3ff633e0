package style

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Status types for per-entry result lines
type Status string

const (
	StatusLinked   Status = "linked"   // symlink created or refreshed
	StatusSkipped  Status = "skipped"  // target occupied by a real file, left alone
	StatusRemoved  Status = "removed"  // link and records removed
	StatusMissing  Status = "missing"  // nothing at the target path
	StatusImported Status = "imported" // moved into the repository and linked back
	StatusError    Status = "error"    // entry failed
)

// Configure applies the color setting: "always", "never", or "auto"
// (color only when stdout is a terminal).
func Configure(color string) {
	switch color {
	case "always":
		pterm.EnableColor()
	case "never":
		pterm.DisableColor()
	default:
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			pterm.DisableColor()
		}
	}
}

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusLinked, StatusImported:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusSkipped:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusRemoved:
		return pterm.NewStyle(pterm.FgCyan)
	case StatusMissing:
		return pterm.NewStyle(pterm.FgGray)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// EntryStatus is one result line for an affected entry.
type EntryStatus struct {
	Adapter string // tool/subtype key
	Name    string // alias or entry name
	Target  string // link path relative to the project
	Status  Status
	Detail  string // optional extra context, e.g. an error message
}

// RenderEntryStatus renders a single entry status line.
func RenderEntryStatus(es EntryStatus) string {
	label := StatusStyle(es.Status).Sprintf("%-8s", string(es.Status))
	line := fmt.Sprintf("%s %-22s %s", label, es.Adapter, es.Name)
	if es.Target != "" && es.Target != es.Name {
		line += pterm.Gray(" -> " + es.Target)
	}
	if es.Detail != "" {
		line += pterm.Gray(" (" + es.Detail + ")")
	}
	return line
}

// RenderSummary renders the final one-line command summary.
func RenderSummary(linked, skipped, failed int) string {
	parts := fmt.Sprintf("%d linked", linked)
	if skipped > 0 {
		parts += fmt.Sprintf(", %s", pterm.Yellow(fmt.Sprintf("%d skipped", skipped)))
	}
	if failed > 0 {
		parts += fmt.Sprintf(", %s", pterm.Red(fmt.Sprintf("%d failed", failed)))
	}
	return parts
}
