package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/propshift/internal/config"
	"github.com/blackwell-systems/propshift/internal/output"
	"github.com/blackwell-systems/propshift/internal/store"
)

var (
	historyFlagLimit int
	historyFlagHits  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past run reports and error-count trends",
	Long: `History lists recent rewrite runs from the local run database, newest
first, with file counts and the type-error delta each run produced.
Use it to watch a long migration converge across sessions.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 10, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&historyFlagHits, "hits", false, "Include per-rule hit counts for each run")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if flagNoColor {
		output.SetNoColor(true)
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening run history: %w", err)
	}
	defer db.Close()

	runs, err := db.RecentRuns(historyFlagLimit)
	if err != nil {
		return fmt.Errorf("loading run history: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println(output.StyleMuted.Render("No runs recorded yet."))
		return nil
	}

	fmt.Println(output.Section("Run History"))
	fmt.Println()

	tbl := output.NewTable("Date", "Command", "Scanned", "Modified", "Skipped", "Failed", "Errors", "Trend")
	for _, run := range runs {
		command := run.Command
		if run.DryRun {
			command += " (dry)"
		}
		tbl.AddRow(
			run.StartedAt.Format("2006-01-02 15:04"),
			command,
			fmt.Sprintf("%d", run.FilesScanned),
			fmt.Sprintf("%d", run.FilesModified),
			fmt.Sprintf("%d", run.FilesSkipped),
			fmt.Sprintf("%d", run.FilesFailed),
			output.ErrorDelta(run.ErrorsBefore, run.ErrorsAfter),
			errorTrend(run),
		)
	}
	tbl.Print()

	if historyFlagHits {
		for _, run := range runs {
			hits, err := db.RunHits(run.ID)
			if err != nil {
				return fmt.Errorf("loading hits for run %d: %w", run.ID, err)
			}
			if len(hits) == 0 {
				continue
			}
			fmt.Println(output.Section(run.StartedAt.Format("2006-01-02 15:04")))
			fmt.Println()
			ht := output.NewTable("Rule", "Hits")
			for _, h := range hits {
				ht.AddRow(h.Rule, fmt.Sprintf("%d", h.Hits))
			}
			ht.Print()
		}
	}
	fmt.Println()
	return nil
}

// errorTrend renders the per-run error-count movement. Fewer errors is
// better, so the delta is inverted before picking the arrow.
func errorTrend(run store.Run) string {
	if run.ErrorsBefore == nil || run.ErrorsAfter == nil {
		return output.StyleMuted.Render("?")
	}
	delta := float64(*run.ErrorsBefore - *run.ErrorsAfter)
	return output.TrendArrow(delta, true)
}
