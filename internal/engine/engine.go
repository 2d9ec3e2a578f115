// Package engine computes rewritten text buffers from extracted constructs
// and the pattern catalog. It is pure: no disk I/O, no shared state. Every
// edit is planned against the immutable extracted spans of the original
// buffer and applied in a single offset-ordered pass, so running the engine
// over its own output is a no-op.
package engine

import (
	"github.com/blackwell-systems/propshift/internal/catalog"
	"github.com/blackwell-systems/propshift/internal/extract"
)

// Result is the outcome of rewriting one file's text.
type Result struct {
	// Text is the rewritten buffer; equal to the input when nothing matched.
	Text string
	// Hits counts applied edits per rule name.
	Hits map[string]int
	// Skipped lists regions the extractor could not classify.
	Skipped []extract.Skipped
	// Dropped counts edits discarded because they overlapped an
	// earlier-queued edit.
	Dropped int
}

// Changed reports whether the rewrite produced a different buffer.
func (r Result) Changed(original string) bool {
	return r.Text != original
}

// Rewrite applies the catalog to one file's text. The path is used only to
// match per-file patches. Rule passes run in a fixed order — props, imports,
// identifiers, patches — and queue replacements against the original
// buffer; conflicts resolve first-queued-wins.
func Rewrite(path, src string, cat *catalog.Catalog) Result {
	imports, importSkips := extract.Imports(src)
	elements, elementSkips := extract.Elements(src)

	var reps []replacement
	reps = append(reps, propReplacements(elements, cat)...)
	reps = append(reps, importReplacements(src, imports, cat)...)
	reps = append(reps, identifierReplacements(src, imports, cat)...)
	reps = append(reps, patchReplacements(path, src, cat)...)

	text, kept, dropped := apply(src, reps)

	hits := make(map[string]int)
	for _, r := range kept {
		hits[r.Rule]++
	}

	var skipped []extract.Skipped
	skipped = append(skipped, importSkips...)
	skipped = append(skipped, elementSkips...)

	return Result{
		Text:    text,
		Hits:    hits,
		Skipped: skipped,
		Dropped: dropped,
	}
}
