package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/propshift/internal/config"
	"github.com/blackwell-systems/propshift/internal/declare"
	"github.com/blackwell-systems/propshift/internal/extract"
	"github.com/blackwell-systems/propshift/internal/output"
	"github.com/blackwell-systems/propshift/internal/scanner"
)

var (
	declareFlagOut     string
	declareFlagModules []string
	declareFlagDryRun  bool
)

var declareCmd = &cobra.Command{
	Use:   "declare [root...]",
	Short: "Synthesize ambient declarations from observed component usage",
	Long: `Declare scans the tree for usages of components imported from the
configured shim modules and merges a loose ambient declaration block per
module into the declarations file. Props are typed permissively so the
type-checker stops flagging not-yet-migrated call sites; existing
declarations are unioned with, never narrowed.`,
	RunE: runDeclare,
}

func init() {
	declareCmd.Flags().StringVar(&declareFlagOut, "out", "", "Declarations file to merge into (default from config)")
	declareCmd.Flags().StringSliceVar(&declareFlagModules, "module", nil, "Module path to synthesize declarations for (can be repeated)")
	declareCmd.Flags().BoolVar(&declareFlagDryRun, "dry-run", false, "Print the merged file instead of writing it")
	rootCmd.AddCommand(declareCmd)
}

func runDeclare(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor {
		output.SetNoColor(true)
	}

	outPath := cfg.DeclarationsOut
	if declareFlagOut != "" {
		outPath = declareFlagOut
	}
	targets := cfg.DeclareModules
	if len(declareFlagModules) > 0 {
		targets = declareFlagModules
	}
	if len(targets) == 0 {
		return fmt.Errorf("no shim modules configured; set declare_modules or pass --module")
	}
	roots := cfg.Roots
	if len(args) > 0 {
		roots = args
	}

	files, warnings, err := scanner.Discover(roots, scanner.Options{
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	})
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, " Warning: %s\n", w)
	}

	obs := declare.NewObservations()
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, " Warning: reading %s: %v\n", path, err)
			continue
		}
		src := string(data)
		imports, _ := extract.Imports(src)
		elements, _ := extract.Elements(src)
		obs.Observe(imports, elements, targets)
	}

	if obs.Empty() {
		fmt.Println(output.StyleMuted.Render("No usages of the target modules observed; nothing to declare."))
		return nil
	}

	existing := ""
	if data, err := os.ReadFile(outPath); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", outPath, err)
	}

	merged := declare.Synthesize(existing, obs)
	changed := merged != existing

	if changed && !declareFlagDryRun {
		if err := os.WriteFile(outPath, []byte(merged), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Out           string   `json:"out"`
			Modules       []string `json:"modules"`
			FilesObserved int      `json:"files_observed"`
			Changed       bool     `json:"changed"`
			DryRun        bool     `json:"dry_run"`
		}{outPath, obs.Modules(), len(files), changed, declareFlagDryRun})
	}
	if declareFlagDryRun {
		fmt.Print(merged)
		return nil
	}
	if !changed {
		fmt.Printf(" %s %s\n", output.StyleMuted.Render("Unchanged:"), outPath)
		return nil
	}

	fmt.Println(output.Section("Declarations"))
	fmt.Println()
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Written:"), output.StyleValue.Render(outPath))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Files observed:"), output.StyleValue.Render(fmt.Sprintf("%d", len(files))))
	for _, mod := range obs.Modules() {
		fmt.Printf(" %s %s\n", output.StyleSuccess.Render("✓"), mod)
	}
	return nil
}
