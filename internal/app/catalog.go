package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/propshift/internal/catalog"
	"github.com/blackwell-systems/propshift/internal/config"
	"github.com/blackwell-systems/propshift/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and display the loaded rule catalog",
	Long: `Catalog loads the rule catalog the other commands would use, validates
it, and prints every rule. A catalog that fails validation here would
also abort a rewrite, so this is the cheap way to vet edits.`,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagNoColor {
		output.SetNoColor(true)
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cat)
	}

	source := cfg.Catalog
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Println(output.Section("Rule Catalog"))
	fmt.Println()
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Source:"), output.StyleValue.Render(source))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Rules:"), output.StyleValue.Render(fmt.Sprintf("%d", cat.RuleCount())))
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Validation:"), output.StyleSuccess.Render("ok"))

	if len(cat.PropRenames) > 0 {
		fmt.Println(output.Section("Prop Renames"))
		fmt.Println()
		tbl := output.NewTable("From", "To", "Applies To")
		for _, r := range cat.PropRenames {
			scope := "any component"
			if len(r.AppliesTo) > 0 {
				scope = strings.Join(r.AppliesTo, ", ")
			}
			tbl.AddRow(r.From, r.To, scope)
		}
		tbl.Print()
	}

	if len(cat.ImportRemaps) > 0 {
		fmt.Println(output.Section("Import Remaps"))
		fmt.Println()
		tbl := output.NewTable("From", "To", "Symbols")
		for _, r := range cat.ImportRemaps {
			symbols := "all"
			if len(r.Symbols) > 0 {
				symbols = strings.Join(r.Symbols, ", ")
			}
			tbl.AddRow(r.FromPath, r.ToPath, symbols)
		}
		tbl.Print()
	}

	if len(cat.IdentifierRenames) > 0 {
		fmt.Println(output.Section("Identifier Renames"))
		fmt.Println()
		tbl := output.NewTable("From", "To", "Module Move")
		for _, r := range cat.IdentifierRenames {
			move := "—"
			if r.FromPath != "" {
				move = r.FromPath + " → " + r.ToPath
			}
			tbl.AddRow(r.From, r.To, move)
		}
		tbl.Print()
	}

	if len(cat.Exclusions) > 0 {
		fmt.Println(output.Section("Exclusions"))
		fmt.Println()
		for _, e := range cat.Exclusions {
			fmt.Printf(" %s %s.%s\n", output.StyleWarning.Render("pinned"), e.Component, e.Prop)
		}
	}

	if len(cat.Patches) > 0 {
		fmt.Println(output.Section("Patches"))
		fmt.Println()
		tbl := output.NewTable("Path Suffix", "Find", "Replace")
		for _, p := range cat.Patches {
			tbl.AddRow(p.PathSuffix, p.Find, p.Replace)
		}
		tbl.Print()
	}
	fmt.Println()
	return nil
}
