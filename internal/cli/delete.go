package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/ui"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete an item's file and unlink it from the graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := newProjectContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if err := pc.scanProject(cmd.Context()); err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		it, err := pc.findItem(args[0])
		if err != nil {
			return handleError(ErrItemNotFound, err, "")
		}

		parents := pc.Project.Graph().Parents(it)
		if len(parents) > 0 && !deleteForce && !isJSONOutput() {
			fmt.Println(ui.Warningf("%d items reference %s:", len(parents), it.ProjectPath()))
			for _, parent := range parents {
				fmt.Printf("  %s\n", ui.ItemPath(parent.ProjectPath()))
			}
			return fmt.Errorf("re-run with --force to delete anyway")
		}

		path := it.ProjectPath()
		if err := it.DeleteItem(cmd.Context()); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		var warnings []Warning
		if _, err := pc.saveIndex(false); err != nil {
			warnings = append(warnings, Warning{Code: WarnIndexUpdateFailed, Message: err.Error()})
		}
		for _, parent := range parents {
			warnings = append(warnings, Warning{
				Code:    WarnUnfulfilledRef,
				Message: "referencing item left behind",
				Path:    parent.ProjectPath(),
			})
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]string{"deleted": path}, warnings, nil)
			return nil
		}
		fmt.Println(ui.Checkf("deleted %s", ui.ItemPath(path)))
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete even when other items reference this one")
	rootCmd.AddCommand(deleteCmd)
}
