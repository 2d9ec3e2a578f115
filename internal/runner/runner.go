// Package runner orchestrates a complete batch run: discover, extract,
// rewrite, write back, report. The sequence is strictly linear — no stage
// branches back — and every per-file failure is contained at the file
// boundary so one corrupt source never costs the rest of the tree.
//
// There is no hidden cross-call state: each invocation builds its own
// context from the config and catalog, processes every file through the
// pure engine, and discards everything but the report.
package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/propshift/internal/catalog"
	"github.com/blackwell-systems/propshift/internal/checker"
	"github.com/blackwell-systems/propshift/internal/config"
	"github.com/blackwell-systems/propshift/internal/engine"
	"github.com/blackwell-systems/propshift/internal/extract"
	"github.com/blackwell-systems/propshift/internal/scanner"
)

// Options controls one batch run.
type Options struct {
	// Roots overrides the configured scan roots when non-empty.
	Roots []string
	// DryRun computes everything but writes nothing.
	DryRun bool
	// Check runs the external type-checker before and after rewriting.
	Check bool
	// CheckDir is the working directory for the checker (default ".").
	CheckDir string
	// Logf receives per-file progress lines; nil disables them.
	Logf func(format string, args ...any)
}

// FileResult is the outcome of processing a single file.
type FileResult struct {
	Path     string
	Modified bool
	Hits     map[string]int
	Skipped  []extract.Skipped
	Err      error
}

// Run executes the full pipeline and always returns a report — partial
// failures are folded into it rather than aborting the batch. The only
// fatal inputs are the ones everything depends on: the caller is expected
// to have loaded config and catalog already.
func Run(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, opts Options) *Report {
	rep := &Report{
		StartedAt: time.Now(),
		DryRun:    opts.DryRun,
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	roots := cfg.Roots
	if len(opts.Roots) > 0 {
		roots = opts.Roots
	}

	if opts.Check {
		rep.ErrorsBefore = runChecker(ctx, cfg, opts, rep, "before")
	}

	files, warnings, err := scanner.Discover(roots, scanner.Options{
		Extensions: cfg.Extensions,
		Exclude:    cfg.Exclude,
	})
	rep.Warnings = append(rep.Warnings, warnings...)
	if err != nil {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("discovery: %v", err))
	}

	for _, path := range files {
		fr := processFile(path, cat, opts.DryRun)
		rep.record(fr)

		switch {
		case fr.Err != nil:
			logf("  failed   %s: %v", path, fr.Err)
		case fr.Modified:
			logf("  rewrote  %s (%d edits)", path, totalHits(fr.Hits))
		case len(fr.Skipped) > 0:
			logf("  skipped  %s (%d ambiguous regions)", path, len(fr.Skipped))
		}
	}

	if opts.Check {
		rep.ErrorsAfter = runChecker(ctx, cfg, opts, rep, "after")
	}

	rep.Duration = time.Since(rep.StartedAt)
	return rep
}

// processFile reads, rewrites, and writes back one file. All failure modes
// — unreadable file, engine panic, write error — surface in the result and
// never escape to the caller.
func processFile(path string, cat *catalog.Catalog, dryRun bool) (fr FileResult) {
	fr.Path = path
	defer func() {
		if r := recover(); r != nil {
			fr.Err = fmt.Errorf("rewrite panic: %v", r)
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		fr.Err = fmt.Errorf("stat: %w", err)
		return fr
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("read: %w", err)
		return fr
	}
	original := string(data)

	res := engine.Rewrite(path, original, cat)
	fr.Hits = res.Hits
	fr.Skipped = res.Skipped

	if !res.Changed(original) {
		// Byte-identical: write skipped, no timestamp churn.
		return fr
	}
	fr.Modified = true

	if dryRun {
		return fr
	}

	// Preserve the original file mode.
	if err := os.WriteFile(path, []byte(res.Text), info.Mode().Perm()); err != nil {
		fr.Modified = false
		fr.Err = fmt.Errorf("write: %w", err)
		return fr
	}
	return fr
}

// runChecker obtains one diagnostic count, degrading to unknown (nil) when
// the checker cannot run or its output cannot be parsed.
func runChecker(ctx context.Context, cfg *config.Config, opts Options, rep *Report, phase string) *int {
	dir := opts.CheckDir
	if dir == "" {
		dir = "."
	}
	n, err := checker.Count(ctx, dir, cfg.Checker)
	if err != nil {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("checker unavailable (%s): %v", phase, err))
		return nil
	}
	return &n
}

func totalHits(hits map[string]int) int {
	total := 0
	for _, n := range hits {
		total += n
	}
	return total
}
