package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/ui"
)

var newCmd = &cobra.Command{
	Use:   "new <type> <name>",
	Short: "Create a content item from a starter definition",
	Long: `Create a new content item. The type is a serialized item type name such
as entityTypeBehavior, blockTypeBehavior, lootTableBehavior, or
soundDefinitionCatalog. The item's file path is allocated under the
type's conventional folder and seeded with starter content carrying the
project-namespaced identifier.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeName, displayName := args[0], strings.TrimSpace(args[1])
		if displayName == "" {
			return handleErrorMsg(ErrMissingArgument, "item name is required", "")
		}

		t, ok := item.ParseItemType(typeName)
		if !ok {
			return handleErrorMsg(ErrTypeUnknown,
				fmt.Sprintf("unknown item type %q", typeName),
				"item types use camelCase names, e.g. entityTypeBehavior")
		}

		pc, err := newProjectContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if err := pc.scanProject(cmd.Context()); err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		it, err := pc.Project.CreateItem(cmd.Context(), t, displayName)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		var warnings []Warning
		if _, err := pc.saveIndex(false); err != nil {
			warnings = append(warnings, Warning{Code: WarnIndexUpdateFailed, Message: err.Error()})
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(summarize(it), warnings, nil)
			return nil
		}
		fmt.Println(ui.Checkf("created %s %s", it.Type().Title(), ui.ItemPath(it.ProjectPath())))
		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
