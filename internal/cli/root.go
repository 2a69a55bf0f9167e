// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/config"
	"github.com/packsmith/packsmith/internal/ui"
)

var (
	// Global flags
	projectName     string // Named project from config
	projectPathFlag string // Explicit path
	configPath      string

	// Resolved values
	resolvedProjectPath string
	cfg                 *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pks",
	Short: "Packsmith - Minecraft add-on project tooling",
	Long: `Packsmith manages Minecraft Bedrock add-on projects: it scans packs and
worlds into a typed item model, resolves the relationships between
definitions (entities, textures, sounds, loot tables, ...), and reports
references that nothing in the project fulfills.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip project resolution for commands that don't need it
		switch cmd.Name() {
		case "init", "completion", "help", "version", "guide":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureCodeTheme(cfg.UI.CodeTheme)

		// Resolve project path: explicit path > named project > upward
		// search from the working directory > default project.
		switch {
		case projectPathFlag != "":
			resolvedProjectPath = projectPathFlag
		case projectName != "":
			resolvedProjectPath, err = cfg.GetProjectPath(projectName)
			if err != nil {
				return fmt.Errorf("project '%s' not found in config", projectName)
			}
		default:
			wd, wdErr := os.Getwd()
			if wdErr == nil {
				if root, findErr := config.FindProjectRoot(wd); findErr == nil {
					resolvedProjectPath = root
				}
			}
			if resolvedProjectPath == "" {
				resolvedProjectPath, err = cfg.GetProjectPath("")
				if err != nil {
					return fmt.Errorf(`no project specified

Either:
  1. Run from inside a project (a directory with packsmith.yml)
  2. Use --project <name> (from config)
  3. Use --project-path /path/to/project
  4. Set default_project in ~/.config/packsmith/config.toml
  5. Run 'pks init /path/to/new/project' to create one`)
				}
			}
		}

		if _, err := os.Stat(resolvedProjectPath); os.IsNotExist(err) {
			return fmt.Errorf("project not found: %s\n\nRun 'pks init %s' to create it", resolvedProjectPath, resolvedProjectPath)
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectName, "project", "p", "", "Named project from config")
	rootCmd.PersistentFlags().StringVar(&projectPathFlag, "project-path", "", "Explicit path to project directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getProjectPath returns the resolved project path.
func getProjectPath() string {
	return resolvedProjectPath
}

func loadGlobalConfig() (*config.Config, error) {
	if strings.TrimSpace(configPath) != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}
