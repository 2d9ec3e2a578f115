package engine

import (
	"strings"

	"github.com/blackwell-systems/propshift/internal/catalog"
)

// patchReplacements queues known per-file fixes. A patch fires only when
// its file suffix matches, its target text is present, and its replacement
// is not — the guard is what keeps a second run a no-op. Only the first
// occurrence is edited; the recorded offset guarantees exactly that
// occurrence is rewritten even when the snippet appears again later.
func patchReplacements(path, src string, cat *catalog.Catalog) []replacement {
	var reps []replacement

	for i := range cat.Patches {
		p := &cat.Patches[i]
		if !strings.HasSuffix(path, p.PathSuffix) {
			continue
		}
		if p.Replace != "" && strings.Contains(src, p.Replace) {
			continue // already applied
		}
		idx := strings.Index(src, p.Find)
		if idx < 0 {
			continue
		}
		reps = append(reps, replacement{
			Start: idx,
			End:   idx + len(p.Find),
			Text:  p.Replace,
			Rule:  p.RuleName(),
		})
	}

	return reps
}
