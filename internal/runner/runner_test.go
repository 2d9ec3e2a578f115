package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/propshift/internal/catalog"
	"github.com/blackwell-systems/propshift/internal/config"
)

func testConfig(roots ...string) *config.Config {
	return &config.Config{
		Roots:      roots,
		Extensions: []string{".tsx"},
		Exclude:    []string{"**/node_modules/**"},
		Checker:    config.DefaultChecker,
	}
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		PropRenames: []catalog.PropRename{
			{From: "isOpen", To: "open"},
		},
	}
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRun_RewritesMatchingFiles(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.tsx"), "<Drawer isOpen={x} />\n")
	write(t, filepath.Join(root, "b.tsx"), "const n = 1;\n")

	rep := Run(context.Background(), testConfig(root), testCatalog(), Options{})

	if rep.FilesScanned != 2 {
		t.Errorf("scanned = %d", rep.FilesScanned)
	}
	if rep.FilesModified != 1 {
		t.Errorf("modified = %d", rep.FilesModified)
	}
	if rep.RuleHits["prop:isOpen->open"] != 1 {
		t.Errorf("hits = %v", rep.RuleHits)
	}

	data, err := os.ReadFile(filepath.Join(root, "a.tsx"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<Drawer open={x} />\n" {
		t.Errorf("file not rewritten: %q", data)
	}
}

func TestRun_UnmatchedFileBytesUntouched(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "plain.tsx")
	content := "export const n = 1;\n"
	write(t, path, content)

	before, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	rep := Run(context.Background(), testConfig(root), testCatalog(), Options{})
	if rep.FilesModified != 0 {
		t.Errorf("modified = %d", rep.FilesModified)
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("unmodified file was rewritten (timestamp churn)")
	}
	data, _ := os.ReadFile(path)
	if string(data) != content {
		t.Error("unmodified file content changed")
	}
}

func TestRun_PartialFailureIsolation(t *testing.T) {
	root := t.TempDir()

	// Nine well-formed files and one with an unbalanced brace.
	for i := 0; i < 9; i++ {
		write(t, filepath.Join(root, fmt.Sprintf("ok%d.tsx", i)), "<Drawer isOpen={x} />\n")
	}
	write(t, filepath.Join(root, "broken.tsx"), "<Modal isOpen={x\n")

	rep := Run(context.Background(), testConfig(root), testCatalog(), Options{})

	if rep.FilesScanned != 10 {
		t.Fatalf("scanned = %d", rep.FilesScanned)
	}
	if rep.FilesModified != 9 {
		t.Errorf("modified = %d, want 9 successes", rep.FilesModified)
	}
	if rep.FilesSkipped != 1 {
		t.Errorf("skipped = %d, want the one ambiguous file", rep.FilesSkipped)
	}
	if len(rep.SkippedFiles) != 1 || filepath.Base(rep.SkippedFiles[0]) != "broken.tsx" {
		t.Errorf("skipped files = %v", rep.SkippedFiles)
	}

	// The ambiguous region itself stays untouched.
	data, _ := os.ReadFile(filepath.Join(root, "broken.tsx"))
	if !strings.Contains(string(data), "isOpen={x") {
		t.Errorf("ambiguous region mutated: %q", data)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.tsx")
	write(t, path, "<Drawer isOpen={x} />\n")

	rep := Run(context.Background(), testConfig(root), testCatalog(), Options{DryRun: true})

	if rep.FilesModified != 1 {
		t.Errorf("dry run should report would-be modifications, got %d", rep.FilesModified)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "<Drawer isOpen={x} />\n" {
		t.Errorf("dry run wrote to disk: %q", data)
	}
}

func TestRun_SecondPassIsNoOp(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.tsx"), "<Drawer isOpen={x} isDisabled />\n")

	cfg := testConfig(root)
	cat := catalog.Default()

	first := Run(context.Background(), cfg, cat, Options{})
	if first.FilesModified != 1 {
		t.Fatalf("first pass modified = %d", first.FilesModified)
	}

	second := Run(context.Background(), cfg, cat, Options{})
	if second.FilesModified != 0 {
		t.Errorf("second pass modified = %d, want 0", second.FilesModified)
	}
	if second.TotalHits() != 0 {
		t.Errorf("second pass hits = %v", second.RuleHits)
	}
}

func TestRun_MissingRootIsWarning(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.tsx"), "<Drawer isOpen={x} />\n")

	rep := Run(context.Background(), testConfig("/no/such/root-propshift", root), testCatalog(), Options{})

	if len(rep.Warnings) != 1 {
		t.Errorf("warnings = %v", rep.Warnings)
	}
	if rep.FilesModified != 1 {
		t.Errorf("run did not continue past missing root: modified = %d", rep.FilesModified)
	}
}

func TestRun_CheckerUnavailableDegradesToUnknown(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a.tsx"), "<Drawer isOpen={x} />\n")

	cfg := testConfig(root)
	cfg.Checker = config.Checker{
		Command: "propshift-no-such-checker",
		Pattern: `Found (\d+) error`,
	}

	rep := Run(context.Background(), cfg, testCatalog(), Options{Check: true, CheckDir: root})

	if rep.ErrorsBefore != nil || rep.ErrorsAfter != nil {
		t.Errorf("expected unknown counts, got %v/%v", rep.ErrorsBefore, rep.ErrorsAfter)
	}
	if rep.FilesModified != 1 {
		t.Error("checker failure aborted the batch")
	}
	if len(rep.Warnings) != 2 {
		t.Errorf("expected before+after checker warnings, got %v", rep.Warnings)
	}
}

func TestAppendProgress_CreatesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MIGRATION_LOG.md")
	rep := &Report{FilesScanned: 5, FilesModified: 2}

	if err := AppendProgress(path, rep); err != nil {
		t.Fatal(err)
	}
	if err := AppendProgress(path, rep); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if strings.Count(content, "| Date |") != 1 {
		t.Errorf("header written more than once:\n%s", content)
	}
	if strings.Count(content, "| 5 | 2 |") != 2 {
		t.Errorf("expected two data rows:\n%s", content)
	}
	if !strings.Contains(content, "unknown") {
		t.Errorf("nil error counts should render as unknown:\n%s", content)
	}
}
