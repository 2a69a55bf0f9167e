package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Walk the project, resolve relationships, and refresh the index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := newProjectContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		start := time.Now()
		var spinner *ui.Spinner
		if !isJSONOutput() {
			spinner = ui.NewSpinner("Scanning project")
			spinner.Start()
		}

		scanErr := pc.scanProject(cmd.Context())
		if spinner != nil {
			spinner.Stop()
		}
		if scanErr != nil {
			return handleError(ErrScanFailed, scanErr, "")
		}

		items := pc.Project.Items()
		unfulfilled := pc.Project.Graph().AllUnfulfilled()
		edges := pc.Project.Graph().Edges()

		var warnings []Warning
		rebuilt, err := pc.saveIndex(true)
		if err != nil {
			warnings = append(warnings, Warning{Code: WarnIndexUpdateFailed, Message: err.Error()})
		} else if rebuilt {
			warnings = append(warnings, Warning{Code: WarnIndexRebuilt, Message: "index schema changed; database was rebuilt"})
		}

		elapsed := time.Since(start)
		if isJSONOutput() {
			data := map[string]interface{}{
				"items":       len(items),
				"edges":       len(edges),
				"unfulfilled": len(unfulfilled),
			}
			outputSuccessWithWarnings(data, warnings, &Meta{
				Count:      len(items),
				ScanTimeMs: elapsed.Milliseconds(),
			})
			return nil
		}

		fmt.Println(ui.Checkf("scanned %d items, %d edges %s",
			len(items), len(edges), ui.Hint(fmt.Sprintf("in %s", elapsed.Round(time.Millisecond)))))
		if len(unfulfilled) > 0 {
			fmt.Println(ui.Warningf("%d unfulfilled references (run 'pks check' for details)", len(unfulfilled)))
		}
		for _, w := range warnings {
			fmt.Println(ui.Warning(w.Message))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
