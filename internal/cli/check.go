package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/ui"
)

var checkIncludeVanilla bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report references that nothing in the project fulfills",
	Long: `Check scans the project and lists unfulfilled references: content a
definition points at that no project item provides. References that name
stock game content are classified as vanilla and hidden by default;
everything else is genuinely missing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := newProjectContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if err := pc.scanProject(cmd.Context()); err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		reports := pc.Project.UnresolvedReferences()
		missingTotal, vanillaTotal := 0, 0
		for _, r := range reports {
			missingTotal += len(r.Missing)
			vanillaTotal += len(r.Vanilla)
		}

		if isJSONOutput() {
			type refEntry struct {
				Path    string `json:"path"`
				Type    string `json:"type"`
				Vanilla bool   `json:"vanilla"`
			}
			type checkEntry struct {
				Item string     `json:"item"`
				Refs []refEntry `json:"refs"`
			}
			var data []checkEntry
			for _, r := range reports {
				entry := checkEntry{Item: r.Item.ProjectPath()}
				for _, u := range r.Missing {
					entry.Refs = append(entry.Refs, refEntry{Path: u.Path, Type: u.Type.String()})
				}
				if checkIncludeVanilla {
					for _, u := range r.Vanilla {
						entry.Refs = append(entry.Refs, refEntry{Path: u.Path, Type: u.Type.String(), Vanilla: true})
					}
				}
				if len(entry.Refs) > 0 {
					data = append(data, entry)
				}
			}
			outputSuccess(data, &Meta{Count: missingTotal + vanillaTotal})
			return nil
		}

		if missingTotal == 0 && (vanillaTotal == 0 || !checkIncludeVanilla) {
			if vanillaTotal > 0 {
				fmt.Println(ui.Checkf("no missing content %s", ui.Hint(fmt.Sprintf("(%d vanilla references hidden; --vanilla to show)", vanillaTotal))))
			} else {
				fmt.Println(ui.Check("no missing content"))
			}
			return nil
		}

		for _, r := range reports {
			if len(r.Missing) == 0 && (!checkIncludeVanilla || len(r.Vanilla) == 0) {
				continue
			}
			fmt.Printf("%s %s\n", ui.ItemPath(r.Item.ProjectPath()), ui.MissingVanillaCounts(len(r.Missing), len(r.Vanilla)))
			for _, u := range r.Missing {
				fmt.Printf("  %s %s %s\n", ui.SymbolError, u.Path, ui.TypeBadge(u.Type.String()))
			}
			if checkIncludeVanilla {
				for _, u := range r.Vanilla {
					fmt.Printf("  %s %s %s\n", ui.SymbolInfo, u.Path, ui.Hint("vanilla"))
				}
			}
		}
		if missingTotal > 0 {
			return fmt.Errorf("%d missing references", missingTotal)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkIncludeVanilla, "vanilla", false, "Include references fulfilled by stock game content")
	rootCmd.AddCommand(checkCmd)
}
