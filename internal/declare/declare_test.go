package declare

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/propshift/internal/extract"
)

func observe(t *testing.T, src string, targets ...string) *Observations {
	t.Helper()
	imports, _ := extract.Imports(src)
	elements, _ := extract.Elements(src)
	obs := NewObservations()
	obs.Observe(imports, elements, targets)
	return obs
}

func TestObserve_CollectsImportedComponents(t *testing.T) {
	src := `import { Modal, Button as Btn } from 'legacy-kit';
import { Card } from 'other-kit';

const x = <Modal open={o} onClose={fn}><Btn variant="ghost" /></Modal>;
const y = <Card title="t" />;
`

	obs := observe(t, src, "legacy-kit")
	if obs.Empty() {
		t.Fatal("no observations recorded")
	}
	mods := obs.Modules()
	if len(mods) != 1 || mods[0] != "legacy-kit" {
		t.Fatalf("modules = %v", mods)
	}

	out := Synthesize("", obs)
	if !strings.Contains(out, "declare module 'legacy-kit'") {
		t.Error("missing declare module block")
	}
	// Alias resolves back to the exported name.
	if !strings.Contains(out, "export const Button:") {
		t.Errorf("aliased component not recorded under exported name:\n%s", out)
	}
	if !strings.Contains(out, "open?: unknown;") || !strings.Contains(out, "onClose?: unknown;") {
		t.Errorf("observed props missing:\n%s", out)
	}
	// Non-target module stays out.
	if strings.Contains(out, "Card") {
		t.Errorf("non-target module leaked in:\n%s", out)
	}
}

func TestSynthesize_PermissiveSignature(t *testing.T) {
	obs := NewObservations()
	obs.Record("legacy-kit", "Modal", "open")

	out := Synthesize("", obs)
	if !strings.Contains(out, "[prop: string]: any;") {
		t.Errorf("expected open index signature:\n%s", out)
	}
}

func TestSynthesize_MergeUnionNotDuplicate(t *testing.T) {
	obs1 := NewObservations()
	obs1.Record("legacy-kit", "Modal", "open")
	obs1.Record("legacy-kit", "Modal", "onClose")

	first := Synthesize("", obs1)

	obs2 := NewObservations()
	obs2.Record("legacy-kit", "Modal", "open")
	obs2.Record("legacy-kit", "Modal", "size")
	obs2.Record("legacy-kit", "Drawer", "placement")

	second := Synthesize(first, obs2)

	if strings.Count(second, "declare module 'legacy-kit'") != 1 {
		t.Fatalf("block duplicated:\n%s", second)
	}
	for _, want := range []string{"open?: unknown;", "onClose?: unknown;", "size?: unknown;", "placement?: unknown;"} {
		if !strings.Contains(second, want) {
			t.Errorf("union missing %q:\n%s", want, second)
		}
	}
	if strings.Count(second, "export const Modal:") != 1 {
		t.Errorf("component duplicated:\n%s", second)
	}
}

func TestSynthesize_RepeatedRunIsByteStable(t *testing.T) {
	obs := NewObservations()
	obs.Record("legacy-kit", "Modal", "open")
	obs.Record("legacy-kit", "Modal", "onClose")

	first := Synthesize("", obs)
	second := Synthesize(first, obs)
	third := Synthesize(second, obs)

	if second != first {
		t.Errorf("second run changed output:\n first: %q\nsecond: %q", first, second)
	}
	if third != second {
		t.Errorf("third run changed output")
	}
}

func TestSynthesize_PreservesUnrelatedContent(t *testing.T) {
	existing := "// project shims\ndeclare module 'png' {\n  const url: string;\n  export default url;\n}\n"

	obs := NewObservations()
	obs.Record("legacy-kit", "Modal", "open")

	out := Synthesize(existing, obs)
	if !strings.Contains(out, "declare module 'png'") {
		t.Errorf("unrelated block lost:\n%s", out)
	}
	if !strings.Contains(out, "// project shims") {
		t.Errorf("leading comment lost:\n%s", out)
	}
	if !strings.Contains(out, "declare module 'legacy-kit'") {
		t.Errorf("new block missing:\n%s", out)
	}
}

func TestSynthesize_UnparsableBlockAppendsFallback(t *testing.T) {
	// The existing block never closes its brace.
	existing := "declare module 'legacy-kit' {\n  export const Modal: ComponentType<{\n"

	obs := NewObservations()
	obs.Record("legacy-kit", "Drawer", "placement")

	out := Synthesize(existing, obs)
	if !strings.HasPrefix(out, existing[:len(existing)-1]) {
		t.Errorf("corrupt block was modified:\n%s", out)
	}
	if !strings.Contains(out, "could not be parsed") {
		t.Errorf("fallback marker missing:\n%s", out)
	}
	if !strings.Contains(out, "placement?: unknown;") {
		t.Errorf("fallback block missing new props:\n%s", out)
	}
}

func TestSynthesize_FallbackMergedNotStacked(t *testing.T) {
	// Re-running over a corrupt block must merge into the fallback the
	// first run appended, not append another one.
	existing := "declare module 'legacy-kit' {\n  export const Modal: ComponentType<{\n"

	obs := NewObservations()
	obs.Record("legacy-kit", "Drawer", "placement")

	first := Synthesize(existing, obs)
	second := Synthesize(first, obs)

	if got := strings.Count(second, "declare module 'legacy-kit'"); got != 2 {
		t.Fatalf("expected corrupt block plus one fallback, found %d blocks:\n%s", got, second)
	}
	if second != first {
		t.Errorf("second run changed output:\n first: %q\nsecond: %q", first, second)
	}

	obs2 := NewObservations()
	obs2.Record("legacy-kit", "Drawer", "size")
	third := Synthesize(second, obs2)
	if strings.Count(third, "declare module 'legacy-kit'") != 2 {
		t.Fatalf("new observations stacked another block:\n%s", third)
	}
	if !strings.Contains(third, "placement?: unknown;") || !strings.Contains(third, "size?: unknown;") {
		t.Errorf("fallback merge lost props:\n%s", third)
	}
}
