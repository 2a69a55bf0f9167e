package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/packsmith/packsmith/internal/atomicfile"
)

// ProjectConfigName is the per-project config file at the project root.
const ProjectConfigName = "packsmith.yml"

// ProjectConfig represents project-level configuration from packsmith.yml.
type ProjectConfig struct {
	// Name is the project's display name.
	Name string `yaml:"name"`

	// Namespace is the identifier namespace for created content.
	Namespace string `yaml:"namespace,omitempty"`

	// BehaviorPacksDir and ResourcePacksDir override the conventional
	// pack folder names.
	BehaviorPacksDir string `yaml:"behavior_packs_dir,omitempty"`
	ResourcePacksDir string `yaml:"resource_packs_dir,omitempty"`

	// AutoIndex triggers an index refresh after CLI operations that
	// modify content (default: true).
	AutoIndex *bool `yaml:"auto_index,omitempty"`

	// ScanContainers descends into worlds and add-on archives during
	// scans (default: false).
	ScanContainers *bool `yaml:"scan_containers,omitempty"`

	// ExtraVanillaTokens are additional reference tokens treated as
	// stock game content when classifying unresolved references.
	ExtraVanillaTokens []string `yaml:"extra_vanilla_tokens,omitempty"`
}

// AutoIndexEnabled returns the AutoIndex setting with its default.
func (c *ProjectConfig) AutoIndexEnabled() bool {
	return c.AutoIndex == nil || *c.AutoIndex
}

// ScanContainersEnabled returns the ScanContainers setting with its default.
func (c *ProjectConfig) ScanContainersEnabled() bool {
	return c.ScanContainers != nil && *c.ScanContainers
}

// LoadProjectConfig reads packsmith.yml from the project root. A missing
// file yields a config with defaults and no error.
func LoadProjectConfig(projectPath string) (*ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, ProjectConfigName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ProjectConfig{Name: filepath.Base(projectPath)}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ProjectConfigName, err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectConfigName, err)
	}
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = filepath.Base(projectPath)
	}
	return &cfg, nil
}

// SaveProjectConfig writes packsmith.yml to the project root atomically.
func SaveProjectConfig(projectPath string, cfg *ProjectConfig) error {
	if cfg == nil {
		return fmt.Errorf("project config is required")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", ProjectConfigName, err)
	}
	path := filepath.Join(projectPath, ProjectConfigName)
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ProjectConfigName, err)
	}
	return nil
}

// FindProjectRoot walks up from start looking for a packsmith.yml or a
// .packsmith directory and returns the directory that holds it.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectConfigName)); err == nil {
			return dir, nil
		}
		if info, err := os.Stat(filepath.Join(dir, ".packsmith")); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no packsmith project found from %s upward", start)
		}
		dir = parent
	}
}
