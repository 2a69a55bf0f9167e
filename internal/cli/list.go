package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/index"
	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/ui"
)

var listTypes []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed items, optionally filtered by type",
	Long: `Lists items from the index without rescanning the project. Use --type
to filter, e.g. 'pks list --type entity --type clientEntity'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range listTypes {
			if _, ok := item.ParseItemType(t); !ok {
				return handleErrorMsg(ErrTypeUnknown,
					fmt.Sprintf("unknown item type %q", t),
					"item types use camelCase names, e.g. entityTypeBehavior")
			}
		}

		db, _, err := index.OpenWithRebuild(getProjectPath())
		if err != nil {
			return handleError(ErrIndexError, err, "")
		}
		defer db.Close()

		records, err := db.ItemRecordsByTypes(listTypes)
		if err != nil {
			return handleError(ErrIndexError, err, "run 'pks scan' to build the index")
		}

		if isJSONOutput() {
			summaries := make([]itemSummary, 0, len(records))
			for _, rec := range records {
				summaries = append(summaries, itemSummary{
					Path: rec.ProjectPath,
					Type: rec.ItemType,
					Name: rec.Name,
				})
			}
			outputSuccess(summaries, &Meta{Count: len(summaries)})
			return nil
		}

		if len(records) == 0 {
			fmt.Println(ui.Hint("no indexed items match (run 'pks scan' if the project changed)"))
			return nil
		}
		table := ui.NewTable(3)
		for _, rec := range records {
			table.AddRow(rec.ItemType, rec.Name, rec.ProjectPath)
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	listCmd.Flags().StringArrayVar(&listTypes, "type", nil, "Only show items of this type (repeatable)")
	rootCmd.AddCommand(listCmd)
}
