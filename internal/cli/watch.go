package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/internal/ui"
	"github.com/packsmith/packsmith/internal/watcher"
)

var (
	watchDebounceMs int
	watchDebug      bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the project and refresh the index on changes",
	Long: `Watches the project tree for file changes and re-runs the scan and
relationship resolution pass whenever content settles. Edits made by
other tools (Blockbench, VS Code, a world export) show up in the index
without running 'pks scan' by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := newProjectContext()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		refresh := func(ctx context.Context) (watcher.Refresh, error) {
			start := time.Now()
			if err := pc.scanProject(ctx); err != nil {
				return watcher.Refresh{}, err
			}
			if _, err := pc.saveIndex(true); err != nil {
				return watcher.Refresh{}, err
			}
			return watcher.Refresh{
				Items:       len(pc.Project.Items()),
				Edges:       len(pc.Project.Graph().Edges()),
				Unfulfilled: len(pc.Project.Graph().AllUnfulfilled()),
				Elapsed:     time.Since(start),
			}, nil
		}

		w, err := watcher.New(watcher.Config{
			ProjectPath:   pc.Path,
			Refresh:       refresh,
			DebounceDelay: time.Duration(watchDebounceMs) * time.Millisecond,
			Debug:         watchDebug,
			OnRefresh:     reportRefresh,
		})
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Initial pass so the index is current before we start waiting.
		if result, err := refresh(ctx); err != nil {
			return handleError(ErrScanFailed, err, "")
		} else {
			reportRefresh(result, nil)
		}

		if !isJSONOutput() {
			fmt.Println(ui.Hint(fmt.Sprintf("watching %s (ctrl-c to stop)", pc.Path)))
		}

		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return handleError(ErrInternal, err, "")
		}
		return nil
	},
}

// reportRefresh prints one line per completed rescan. In JSON mode each
// refresh is its own envelope so scripts can stream them.
func reportRefresh(result watcher.Refresh, err error) {
	if err != nil {
		if isJSONOutput() {
			outputError(ErrScanFailed, err.Error(), nil, "")
			return
		}
		fmt.Println(ui.Warningf("refresh failed: %v", err))
		return
	}
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"items":       result.Items,
			"edges":       result.Edges,
			"unfulfilled": result.Unfulfilled,
		}, &Meta{Count: result.Items, ScanTimeMs: result.Elapsed.Milliseconds()})
		return
	}
	fmt.Println(ui.Checkf("%d items, %d edges, %d unfulfilled %s",
		result.Items, result.Edges, result.Unfulfilled,
		ui.Hint(fmt.Sprintf("in %s", result.Elapsed.Round(time.Millisecond)))))
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounceMs, "debounce", 250, "Delay in milliseconds before rescanning after a change")
	watchCmd.Flags().BoolVar(&watchDebug, "debug", false, "Log watcher events to stderr")
	rootCmd.AddCommand(watchCmd)
}
