package engine

import (
	"sort"
	"strings"
)

// replacement is one queued text edit against the original buffer. Start
// and End are byte offsets into the unmutated source; Rule keys the hit
// count it contributes to.
type replacement struct {
	Start int
	End   int
	Text  string
	Rule  string
}

// apply resolves conflicts and splices all replacements into src in a
// single pass. Edits are applied in descending start order so earlier
// edits never invalidate the offsets of later ones. Overlapping edits are
// resolved first-queued-wins; the number dropped is returned alongside
// the result.
func apply(src string, reps []replacement) (string, []replacement, int) {
	if len(reps) == 0 {
		return src, nil, 0
	}

	// Resolve overlaps in queue order: an edit conflicting with any
	// already-kept edit is dropped.
	var kept []replacement
	dropped := 0
	for _, r := range reps {
		conflict := false
		for _, k := range kept {
			if r.Start < k.End && k.Start < r.End {
				conflict = true
				break
			}
		}
		if conflict {
			dropped++
			continue
		}
		kept = append(kept, r)
	}

	ordered := make([]replacement, len(kept))
	copy(ordered, kept)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Start > ordered[j].Start
	})

	var sb strings.Builder
	out := src
	for _, r := range ordered {
		sb.Reset()
		sb.Grow(len(out) - (r.End - r.Start) + len(r.Text))
		sb.WriteString(out[:r.Start])
		sb.WriteString(r.Text)
		sb.WriteString(out[r.End:])
		out = sb.String()
	}

	return out, kept, dropped
}

// lineEnding returns the file's line-ending convention, preserving CRLF
// when the original uses it.
func lineEnding(src string) string {
	if strings.Contains(src, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
