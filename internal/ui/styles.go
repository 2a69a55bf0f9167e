package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): primary text
// - Accent (soft purple #A78BFA by default, configurable): paths, highlights
// - Muted (gray): secondary info, counts
// - No colored success/error/warning - unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for project paths, item references, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, counts
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent)).Bold(true)

	accentColor = defaultAccent
	codeTheme   = ""
)

// ConfigureTheme applies the configured accent color to the shared styles.
// Values "none", "off", and "default" disable the accent.
func ConfigureTheme(accent string) {
	normalized, ok := normalizeAccentColor(accent)
	if !ok {
		if isAccentDisabled(accent) {
			accentColor = ""
			Accent = lipgloss.NewStyle()
			AccentBold = lipgloss.NewStyle().Bold(true)
		}
		return
	}
	accentColor = normalized
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(normalized))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(normalized)).Bold(true)
}

// ConfigureCodeTheme sets the Glamour/Chroma theme for code blocks in
// rendered markdown.
func ConfigureCodeTheme(theme string) {
	codeTheme = strings.TrimSpace(theme)
}

// AccentColor returns the active accent color, or ok=false when the
// accent is disabled.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

func isAccentDisabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "off", "default":
		return true
	}
	return false
}

// normalizeAccentColor validates an accent value: an ANSI color code
// (0-255) or a hex color (#RGB or #RRGGBB). Three-digit hex expands to
// six.
func normalizeAccentColor(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || isAccentDisabled(trimmed) {
		return "", false
	}

	if strings.HasPrefix(trimmed, "#") {
		hex := strings.ToLower(strings.TrimPrefix(trimmed, "#"))
		if !isHex(hex) {
			return "", false
		}
		switch len(hex) {
		case 3:
			expanded := make([]byte, 0, 6)
			for i := 0; i < 3; i++ {
				expanded = append(expanded, hex[i], hex[i])
			}
			return "#" + string(expanded), true
		case 6:
			return "#" + hex, true
		}
		return "", false
	}

	if code, err := strconv.Atoi(trimmed); err == nil {
		if code < 0 || code > 255 {
			return "", false
		}
		return fmt.Sprintf("%d", code), true
	}
	return "", false
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
