package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/ui"
)

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename an item's file, keeping its extension and folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, newName := args[0], strings.TrimSpace(args[1])
		if newName == "" {
			return handleErrorMsg(ErrMissingArgument, "new name is required", "")
		}

		pc, err := newProjectContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if err := pc.scanProject(cmd.Context()); err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		it, err := pc.findItem(target)
		if err != nil {
			return handleError(ErrItemNotFound, err, "")
		}
		oldPath := it.ProjectPath()

		if err := it.Rename(cmd.Context(), newName); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		var warnings []Warning
		if _, err := pc.saveIndex(false); err != nil {
			warnings = append(warnings, Warning{Code: WarnIndexUpdateFailed, Message: err.Error()})
		}

		if isJSONOutput() {
			data := map[string]string{"from": oldPath, "to": it.ProjectPath()}
			outputSuccessWithWarnings(data, warnings, nil)
			return nil
		}
		fmt.Printf("%s\n", ui.Checkf("renamed %s -> %s", ui.ItemPath(oldPath), ui.ItemPath(it.ProjectPath())))
		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
