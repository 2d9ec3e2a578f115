package checker

import (
	"context"
	"runtime"
	"testing"

	"github.com/blackwell-systems/propshift/internal/config"
)

func shCfg(t *testing.T, script, pattern string) config.Checker {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("sh fixtures are unix-only")
	}
	return config.Checker{
		Command: "sh",
		Args:    []string{"-c", script},
		Pattern: pattern,
	}
}

func TestCount_ParsesErrorCount(t *testing.T) {
	cfg := shCfg(t, `echo "Found 42 errors in 7 files."; exit 2`, `Found (\d+) error`)

	n, err := Count(context.Background(), t.TempDir(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Errorf("count = %d, want 42", n)
	}
}

func TestCount_CleanRunIsZero(t *testing.T) {
	cfg := shCfg(t, `echo "compiled ok"`, `Found (\d+) error`)

	n, err := Count(context.Background(), t.TempDir(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestCount_MissingCommandIsError(t *testing.T) {
	cfg := config.Checker{
		Command: "propshift-no-such-checker",
		Pattern: `Found (\d+) error`,
	}

	if _, err := Count(context.Background(), t.TempDir(), cfg); err == nil {
		t.Error("expected error for missing command")
	}
}

func TestCount_UnparseableFailureIsError(t *testing.T) {
	cfg := shCfg(t, `echo "segfault"; exit 1`, `Found (\d+) error`)

	if _, err := Count(context.Background(), t.TempDir(), cfg); err == nil {
		t.Error("expected error when failing output matches nothing")
	}
}

func TestCount_BadPatternIsError(t *testing.T) {
	cfg := shCfg(t, `echo ok`, `Found \d+ error`)

	if _, err := Count(context.Background(), t.TempDir(), cfg); err == nil {
		t.Error("expected error for pattern without capture group")
	}
}
