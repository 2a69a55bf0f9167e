// Package config handles global Packsmith configuration and per-project
// settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global Packsmith configuration.
type Config struct {
	// DefaultProject is the name of the default project (from Projects).
	DefaultProject string `toml:"default_project"`

	// Projects maps project names to their root paths.
	Projects map[string]string `toml:"projects"`

	// Editor is the editor for opening content files (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// EditorMode controls how the editor is launched: auto, terminal, or gui.
	EditorMode string `toml:"editor_mode"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255") or
	// hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks, e.g. "monokai", "dracula", "github".
	CodeTheme string `toml:"code_theme"`
}

// GetProjectPath returns the root path for a named project. An empty name
// selects the default project.
func (c *Config) GetProjectPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultProject
	}
	if c.Projects != nil {
		if path, ok := c.Projects[name]; ok {
			return path, nil
		}
	}
	if name == "" {
		return "", fmt.Errorf("no default project configured")
	}
	return "", fmt.Errorf("project '%s' not found in config", name)
}

// ListProjects returns all configured projects with their paths.
func (c *Config) ListProjects() map[string]string {
	result := make(map[string]string, len(c.Projects))
	for name, path := range c.Projects {
		result[name] = path
	}
	return result
}

// Load loads the configuration from the default location. Returns a
// default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path. Checks
// ~/.config/packsmith/config.toml first (XDG style), then falls back to
// the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "packsmith", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "packsmith", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/packsmith/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "packsmith", "config.toml"), nil
}

// CreateDefault creates a commented default config file if none exists.
func CreateDefault() (string, error) {
	configPath := DefaultPath()
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# Packsmith Configuration

# Default project name (must exist in [projects] below)
# default_project = "my_addon"

# Named projects
# [projects]
# my_addon = "/path/to/my_addon"

# Editor for opening files (defaults to $EDITOR)
# editor = "code"
#
# How to launch the editor:
#   auto     - detect common terminal editors
#   terminal - always run in the foreground with TTY attached
#   gui      - always run in the background (non-blocking)
# editor_mode = "auto"
#
# Optional UI accent color for headers/links in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configPath, nil
}

// GetEditor returns the editor to use, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}
