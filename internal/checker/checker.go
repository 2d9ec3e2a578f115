// Package checker invokes an external type-checker and extracts a
// diagnostic count from its output. The engine treats the checker as an
// opaque counter: any command works as long as a regular expression can
// pull a number out of what it prints.
package checker

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"

	"github.com/blackwell-systems/propshift/internal/config"
)

// Count runs the configured checker once in dir and returns the diagnostic
// count parsed from its combined output. The checker exiting non-zero is
// expected — that is what diagnostics do — so only a failure to start or
// an unparseable output is an error. Callers degrade to an unknown count;
// there is no retry.
func Count(ctx context.Context, dir string, cfg config.Checker) (int, error) {
	re, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return 0, fmt.Errorf("compiling checker pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return 0, fmt.Errorf("checker pattern %q has no capture group", cfg.Pattern)
	}

	cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if len(out) == 0 && err != nil {
		return 0, fmt.Errorf("running %s: %w", cfg.Command, err)
	}

	m := re.FindSubmatch(out)
	if m == nil {
		// A clean checker run prints no error summary at all.
		if err == nil {
			return 0, nil
		}
		return 0, fmt.Errorf("checker output did not match pattern %q", cfg.Pattern)
	}

	n, convErr := strconv.Atoi(string(m[1]))
	if convErr != nil {
		return 0, fmt.Errorf("parsing checker count %q: %w", m[1], convErr)
	}
	return n, nil
}
