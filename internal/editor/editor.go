// Package editor launches the user's configured editor on content files.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/packsmith/packsmith/internal/config"
	"github.com/packsmith/packsmith/internal/shellquote"
)

type editorMode int

const (
	editorModeAuto editorMode = iota
	editorModeTerminal
	editorModeGUI
)

// parseEditorMode maps the editor_mode config value to a launch mode.
// Unknown values fall back to auto detection.
func parseEditorMode(cfg *config.Config) editorMode {
	if cfg == nil {
		return editorModeAuto
	}
	switch strings.ToLower(strings.TrimSpace(cfg.EditorMode)) {
	case "terminal", "tui":
		return editorModeTerminal
	case "gui", "background":
		return editorModeGUI
	default:
		return editorModeAuto
	}
}

// editorCommandName extracts the bare command name from an editor setting,
// which may carry arguments ("nvim -u init.lua") or a quoted absolute path.
func editorCommandName(editor string) string {
	trimmed := strings.TrimSpace(editor)
	if trimmed == "" {
		return ""
	}
	first := trimmed
	if trimmed[0] == '"' || trimmed[0] == '\'' {
		quote := trimmed[0]
		if end := strings.IndexByte(trimmed[1:], quote); end >= 0 {
			first = trimmed[1 : end+1]
		}
	} else if idx := strings.IndexAny(trimmed, " \t"); idx >= 0 {
		first = trimmed[:idx]
	}
	if slash := strings.LastIndexAny(first, `/\`); slash >= 0 {
		first = first[slash+1:]
	}
	return first
}

// terminalEditors are commands known to run inside the terminal. Anything
// else is assumed to detach (GUI editors, "open -a ...").
var terminalEditors = map[string]bool{
	"vi": true, "vim": true, "nvim": true, "nano": true, "pico": true,
	"emacs": true, "hx": true, "helix": true, "micro": true, "kak": true,
	"ed": true, "mg": true, "joe": true,
}

func isTerminalEditor(editor string) bool {
	return terminalEditors[editorCommandName(editor)]
}

// Open launches the configured editor on filePath. Terminal editors run in
// the foreground with the TTY attached; GUI editors are started in the
// background. Returns false when no editor is configured.
func Open(cfg *config.Config, filePath string) (bool, error) {
	if cfg == nil {
		return false, nil
	}
	editor := cfg.GetEditor()
	if strings.TrimSpace(editor) == "" {
		return false, nil
	}

	cmd := buildCommand(editor, filePath)

	terminal := false
	switch parseEditorMode(cfg) {
	case editorModeTerminal:
		terminal = true
	case editorModeGUI:
		terminal = false
	default:
		terminal = isTerminalEditor(editor)
	}

	if terminal {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return false, fmt.Errorf("editor '%s' failed: %w", editor, err)
		}
		return true, nil
	}
	if err := cmd.Start(); err != nil {
		return false, fmt.Errorf("failed to launch editor '%s': %w", editor, err)
	}
	return true, nil
}

// buildCommand assembles the exec.Cmd for an editor setting. Compound
// settings like "open -a Cursor" go through the shell so their arguments
// survive.
func buildCommand(editor, filePath string) *exec.Cmd {
	editor = strings.TrimSpace(editor)
	if strings.ContainsAny(editor, " \t\"'") {
		return exec.Command("sh", "-c", editor+" "+shellquote.Quote(filePath))
	}
	return exec.Command(editor, filePath)
}
