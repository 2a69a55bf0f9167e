package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/item"
	"github.com/packsmith/packsmith/internal/project"
	"github.com/packsmith/packsmith/internal/ui"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a project summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := newProjectContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if err := pc.scanProject(cmd.Context()); err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		counts := map[item.ItemType]int{}
		for _, it := range pc.Project.Items() {
			counts[it.Type()]++
		}
		unresolved := pc.Project.UnresolvedReferences()

		if isJSONOutput() {
			byType := map[string]int{}
			for t, n := range counts {
				byType[t.String()] = n
			}
			data := map[string]interface{}{
				"project":     pc.Cfg.Name,
				"items":       len(pc.Project.Items()),
				"edges":       len(pc.Project.Graph().Edges()),
				"byType":      byType,
				"unfulfilled": len(pc.Project.Graph().AllUnfulfilled()),
			}
			outputSuccess(data, nil)
			return nil
		}

		md := buildReportMarkdown(pc, counts, unresolved)
		display := ui.NewDisplayContext()
		rendered, err := ui.RenderMarkdown(md, display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			// Fall back to the raw markdown when rendering fails.
			fmt.Println(md)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func buildReportMarkdown(pc *projectContext, counts map[item.ItemType]int, unresolved []project.UnresolvedReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", pc.Cfg.Name)
	fmt.Fprintf(&sb, "%d items, %d relationships\n\n", len(pc.Project.Items()), len(pc.Project.Graph().Edges()))

	types := make([]item.ItemType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i].String() < types[j].String()
	})

	sb.WriteString("## Content\n\n")
	sb.WriteString("| Type | Count |\n|---|---|\n")
	for _, t := range types {
		fmt.Fprintf(&sb, "| %s | %d |\n", t.Title(), counts[t])
	}
	sb.WriteString("\n")

	missing := 0
	for _, r := range unresolved {
		missing += len(r.Missing)
	}
	sb.WriteString("## Health\n\n")
	if missing == 0 {
		sb.WriteString("No missing content.\n")
	} else {
		fmt.Fprintf(&sb, "%d missing references:\n\n", missing)
		for _, r := range unresolved {
			for _, u := range r.Missing {
				fmt.Fprintf(&sb, "- `%s` wants `%s`\n", r.Item.ProjectPath(), u.Path)
			}
		}
	}
	return sb.String()
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
