package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/config"
	"github.com/packsmith/packsmith/internal/names"
	"github.com/packsmith/packsmith/internal/ui"
)

var (
	initName      string
	initNamespace string
	initRegister  string
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new Packsmith project",
	Long: `Create a new Packsmith project directory with a packsmith.yml config
file, the .packsmith index directory, and empty behavior_packs/ and
resource_packs/ folders.

With no path, the current directory is initialized.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "."
		if len(args) == 1 {
			target = args[0]
		}
		absPath, err := filepath.Abs(target)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		configFile := filepath.Join(absPath, config.ProjectConfigName)
		if _, err := os.Stat(configFile); err == nil {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("already a Packsmith project: %s", absPath), "")
		}

		name := initName
		if name == "" {
			name = filepath.Base(absPath)
		}
		namespace := initNamespace
		if namespace == "" {
			namespace = names.FileComponent(name)
		}

		if err := os.MkdirAll(absPath, 0o755); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		for _, dir := range []string{".packsmith", "behavior_packs", "resource_packs"} {
			if err := os.MkdirAll(filepath.Join(absPath, dir), 0o755); err != nil {
				return handleError(ErrFileWriteError, err, "")
			}
		}

		projectCfg := &config.ProjectConfig{
			Name:      name,
			Namespace: namespace,
		}
		if err := config.SaveProjectConfig(absPath, projectCfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if initRegister != "" {
			if err := registerProject(initRegister, absPath); err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{
				"path":      absPath,
				"name":      name,
				"namespace": namespace,
			}, nil)
			return nil
		}

		fmt.Println(ui.Checkf("initialized project '%s' at %s", name, absPath))
		fmt.Println("  " + ui.Hint("namespace: "+namespace))
		if initRegister != "" {
			fmt.Println("  " + ui.Hint(fmt.Sprintf("registered as '%s' in global config", initRegister)))
		}
		return nil
	},
}

// registerProject adds the project to the global config, creating the
// config file if it does not exist yet.
func registerProject(name, path string) error {
	globalCfg, err := loadGlobalConfig()
	if err != nil {
		return err
	}
	if globalCfg == nil {
		globalCfg = &config.Config{}
	}
	if globalCfg.Projects == nil {
		globalCfg.Projects = make(map[string]string)
	}
	globalCfg.Projects[name] = path
	if globalCfg.DefaultProject == "" {
		globalCfg.DefaultProject = name
	}
	return config.Save(globalCfg)
}

func init() {
	initCmd.Flags().StringVar(&initName, "name", "", "Project display name (defaults to the directory name)")
	initCmd.Flags().StringVar(&initNamespace, "namespace", "", "Identifier namespace for created content")
	initCmd.Flags().StringVar(&initRegister, "register", "", "Register the project under this name in the global config")
	rootCmd.AddCommand(initCmd)
}
