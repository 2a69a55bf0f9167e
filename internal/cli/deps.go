package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/ui"
)

var depsCmd = &cobra.Command{
	Use:   "deps <path>",
	Short: "List the items an item depends on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelationList(cmd, args[0], "depends on", func(pc *projectContext, it *item.Item) []*item.Item {
			return pc.Project.Graph().Children(it)
		})
	},
}

var rdepsCmd = &cobra.Command{
	Use:   "rdeps <path>",
	Short: "List the items that depend on an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelationList(cmd, args[0], "is depended on by", func(pc *projectContext, it *item.Item) []*item.Item {
			return pc.Project.Graph().Parents(it)
		})
	},
}

func runRelationList(cmd *cobra.Command, target, verb string, related func(*projectContext, *item.Item) []*item.Item) error {
	pc, err := newProjectContext()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	if err := pc.restoreFromIndex(); err != nil {
		return handleError(ErrIndexError, err, "run 'pks scan' to build the index")
	}

	it, err := pc.findItem(target)
	if err != nil {
		return handleError(ErrItemNotFound, err, "")
	}

	items := related(pc, it)
	if isJSONOutput() {
		summaries := make([]itemSummary, 0, len(items))
		for _, rel := range items {
			summaries = append(summaries, summarize(rel))
		}
		outputSuccess(summaries, &Meta{Count: len(summaries)})
		return nil
	}

	if len(items) == 0 {
		fmt.Printf("%s %s nothing\n", ui.ItemPath(it.ProjectPath()), verb)
		return nil
	}
	fmt.Printf("%s %s %s\n", ui.ItemPath(it.ProjectPath()), verb, ui.Count(len(items), "item", "items"))
	table := ui.NewTable(2)
	for _, rel := range items {
		table.AddRow(rel.Type().Title(), rel.ProjectPath())
	}
	fmt.Print(table.String())
	return nil
}

func init() {
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(rdepsCmd)
}
