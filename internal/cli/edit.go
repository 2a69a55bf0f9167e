package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/editor"
	"github.com/packsmith/packsmith/internal/storage"
	"github.com/packsmith/packsmith/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Open a content file in your editor",
	Long: `Opens a project file in your configured editor.

The editor comes from the 'editor' setting in config.toml or $EDITOR.
Paths inside archives (.mcaddon, .mcworld) cannot be edited in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := newProjectContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		projectPath := args[0]
		if !strings.HasPrefix(projectPath, "/") {
			projectPath = "/" + projectPath
		}
		if strings.Contains(projectPath, storage.ContainerDelimiter) {
			return handleErrorMsg(ErrInvalidInput,
				fmt.Sprintf("%q is inside an archive and cannot be edited in place", projectPath),
				"extract the archive, edit the file, and repackage it")
		}

		diskPath := filepath.Join(pc.Path, filepath.FromSlash(strings.TrimPrefix(projectPath, "/")))
		if _, err := os.Stat(diskPath); err != nil {
			return handleError(ErrFileNotFound,
				fmt.Errorf("no file at %q (run 'pks scan' to see project contents)", projectPath), "")
		}

		opened, err := editor.Open(cfg, diskPath)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":   projectPath,
				"file":   diskPath,
				"opened": opened,
			}, nil)
			return nil
		}
		if !opened {
			fmt.Println(diskPath)
			fmt.Println(ui.Hint("set 'editor' in ~/.config/packsmith/config.toml or $EDITOR to open automatically"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
