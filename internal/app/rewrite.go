package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/propshift/internal/catalog"
	"github.com/blackwell-systems/propshift/internal/config"
	"github.com/blackwell-systems/propshift/internal/output"
	"github.com/blackwell-systems/propshift/internal/runner"
	"github.com/blackwell-systems/propshift/internal/store"
)

var (
	rewriteFlagDryRun bool
	rewriteFlagCheck  bool
	rewriteFlagLog    bool
	rewriteFlagExt    []string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [root...]",
	Short: "Scan and rewrite source files against the rule catalog",
	Long: `Rewrite discovers source files under the given roots (default: the
configured roots, conventionally src/), extracts imports and JSX usages,
applies the rule catalog, and writes changed files back in place.

Files the extractor cannot fully understand are left untouched and listed
as skipped; one bad file never aborts the batch. The exit status is
non-zero when any file failed or was flagged ambiguous, so operators can
inspect the leftovers.`,
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().BoolVar(&rewriteFlagDryRun, "dry-run", false, "Report what would change without writing")
	rewriteCmd.Flags().BoolVar(&rewriteFlagCheck, "check", false, "Run the external type-checker before and after to compute the error delta")
	rewriteCmd.Flags().BoolVar(&rewriteFlagLog, "log", false, "Append a row to the progress log")
	rewriteCmd.Flags().StringSliceVar(&rewriteFlagExt, "ext", nil, "Extension filter override (can be repeated)")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor {
		output.SetNoColor(true)
	}
	if len(rewriteFlagExt) > 0 {
		cfg.Extensions = rewriteFlagExt
	}

	// Catalog problems are fatal: every rewrite decision depends on it.
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}

	opts := runner.Options{
		Roots:  args,
		DryRun: rewriteFlagDryRun,
		Check:  rewriteFlagCheck,
	}
	if flagVerbose {
		opts.Logf = func(format string, a ...any) {
			fmt.Printf(format+"\n", a...)
		}
	}

	rep := runner.Run(cmd.Context(), cfg, cat, opts)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		renderRunReport(rep)
	}

	if !rewriteFlagDryRun {
		persistRun(rep)
		if rewriteFlagLog {
			if err := runner.AppendProgress(cfg.ProgressLog, rep); err != nil {
				fmt.Fprintf(os.Stderr, " Warning: %v\n", err)
			}
		}
	}

	if rep.FilesFailed > 0 || rep.FilesSkipped > 0 {
		return fmt.Errorf("%d files failed, %d flagged ambiguous", rep.FilesFailed, rep.FilesSkipped)
	}
	return nil
}

// persistRun snapshots the report into the run-history database.
// Best-effort: a broken history database never fails a successful rewrite.
func persistRun(rep *runner.Report) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, " Warning: run history unavailable: %v\n", err)
		return
	}
	defer db.Close()

	_, err = db.InsertRun(&store.Run{
		StartedAt:     rep.StartedAt,
		Command:       "rewrite",
		Version:       appVersion,
		DryRun:        rep.DryRun,
		FilesScanned:  rep.FilesScanned,
		FilesModified: rep.FilesModified,
		FilesSkipped:  rep.FilesSkipped,
		FilesFailed:   rep.FilesFailed,
		ErrorsBefore:  rep.ErrorsBefore,
		ErrorsAfter:   rep.ErrorsAfter,
	}, rep.RuleHits)
	if err != nil {
		fmt.Fprintf(os.Stderr, " Warning: recording run history: %v\n", err)
	}
}

func renderRunReport(rep *runner.Report) {
	fmt.Println(output.Section("Rewrite Run"))
	fmt.Println()

	label := func(name string, value string) {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render(name), output.StyleValue.Render(value))
	}
	label("Files scanned:", fmt.Sprintf("%d", rep.FilesScanned))
	label("Files modified:", fmt.Sprintf("%d", rep.FilesModified))
	label("Flagged ambiguous:", fmt.Sprintf("%d", rep.FilesSkipped))
	label("Failed:", fmt.Sprintf("%d", rep.FilesFailed))
	label("Duration:", rep.Duration.Round(time.Millisecond).String())
	if rep.DryRun {
		fmt.Printf(" %s\n", output.StyleWarning.Render("Dry run: nothing written."))
	}

	if len(rep.RuleHits) > 0 {
		fmt.Println(output.Section("Rule Hits"))
		fmt.Println()
		tbl := output.NewTable("Rule", "Hits")
		for _, rule := range sortedRules(rep.RuleHits) {
			tbl.AddRow(rule, fmt.Sprintf("%d", rep.RuleHits[rule]))
		}
		tbl.Print()
	}

	fmt.Println(output.Section("Type Errors"))
	fmt.Println()
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Before → after:"),
		output.ErrorDelta(rep.ErrorsBefore, rep.ErrorsAfter))

	// The skipped set is listed distinctly so it can be inspected by hand.
	if len(rep.SkippedFiles) > 0 {
		fmt.Println(output.Section("Ambiguous Files"))
		fmt.Println()
		for _, f := range rep.SkippedFiles {
			fmt.Printf(" %s %s\n", output.StyleWarning.Render("?"), f)
		}
	}
	if len(rep.FailedFiles) > 0 {
		fmt.Println(output.Section("Failed Files"))
		fmt.Println()
		for _, f := range rep.FailedFiles {
			fmt.Printf(" %s %s\n", output.StyleError.Render("✗"), f)
		}
	}
	for _, w := range rep.Warnings {
		fmt.Printf(" %s %s\n", output.StyleWarning.Render("!"), w)
	}
	fmt.Println()
}

func sortedRules(hits map[string]int) []string {
	rules := make([]string, 0, len(hits))
	for r := range hits {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool {
		if hits[rules[i]] != hits[rules[j]] {
			return hits[rules[i]] > hits[rules[j]]
		}
		return rules[i] < rules[j]
	})
	return rules
}
