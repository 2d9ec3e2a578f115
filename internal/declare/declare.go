// Package declare synthesizes ambient type declarations for modules the
// checker cannot resolve. Declarations are deliberately permissive — the
// synthesizer observes which props a component is given, not what types
// they carry, so every component gets an open index signature. That is a
// documented precision loss, not a defect: the goal is to silence
// cannot-find-module diagnostics, not to reconstruct the library's types.
package declare

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/blackwell-systems/propshift/internal/extract"
)

// Observations accumulates (module, component, prop) usage across a
// scanned tree.
type Observations struct {
	modules map[string]map[string]map[string]bool
}

// NewObservations returns an empty accumulator.
func NewObservations() *Observations {
	return &Observations{modules: make(map[string]map[string]map[string]bool)}
}

// Record notes that component from module was used with prop. An empty
// prop records the component alone.
func (o *Observations) Record(module, component, prop string) {
	comps, ok := o.modules[module]
	if !ok {
		comps = make(map[string]map[string]bool)
		o.modules[module] = comps
	}
	props, ok := comps[component]
	if !ok {
		props = make(map[string]bool)
		comps[component] = props
	}
	if prop != "" {
		props[prop] = true
	}
}

// Observe scans one file's extracted constructs and records usage for
// every component imported from one of the target module paths. Tag
// bindings resolve through the import list: local aliases map back to the
// exported name.
func (o *Observations) Observe(imports []extract.Import, elements []extract.Element, targets []string) {
	targetSet := make(map[string]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	// Local binding -> (module, exported name).
	type binding struct{ module, name string }
	bound := make(map[string]binding)
	for _, imp := range imports {
		if !targetSet[imp.Path] {
			continue
		}
		for _, n := range imp.Names {
			bound[n.Local()] = binding{imp.Path, n.Name}
		}
		if imp.Default != "" {
			bound[imp.Default] = binding{imp.Path, "default"}
		}
	}

	for _, el := range elements {
		// Dotted tags resolve through their root binding.
		root := el.Tag
		if i := strings.IndexByte(root, '.'); i >= 0 {
			root = root[:i]
		}
		b, ok := bound[root]
		if !ok {
			continue
		}
		o.Record(b.module, b.name, "")
		for _, attr := range el.Attrs {
			if attr.Name != "" {
				o.Record(b.module, b.name, attr.Name)
			}
		}
	}
}

// Empty reports whether nothing has been recorded.
func (o *Observations) Empty() bool {
	return len(o.modules) == 0
}

// Modules returns the observed module paths, sorted.
func (o *Observations) Modules() []string {
	paths := make([]string, 0, len(o.modules))
	for p := range o.modules {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Synthesize merges the observations into the existing declarations file
// text and returns the new text. Each module path gets exactly one
// `declare module` block: an existing block is re-emitted with the union
// of its props and the observed ones, never duplicated. An existing block
// whose braces cannot be paired is left byte-for-byte intact and a
// delimited fallback block is appended instead.
func Synthesize(existing string, obs *Observations) string {
	out := existing

	for _, module := range obs.Modules() {
		merged := cloneComponents(obs.modules[module])

		start, end, ok, parsable := findBlock(out, module)
		if ok && parsable {
			for comp, props := range parseBlock(out[start:end]) {
				for p := range props {
					merged[comp] = union(merged[comp], p)
				}
				if _, seen := merged[comp]; !seen {
					merged[comp] = props
				}
			}
			block := renderBlock(module, merged)
			out = out[:start] + block + out[end:]
			continue
		}
		if ok && !parsable {
			// Corrupt block: do not touch it, append a marked fallback.
			out = appendBlock(out, fallbackHeader(module)+renderBlock(module, merged))
			continue
		}
		out = appendBlock(out, renderBlock(module, merged))
	}

	return out
}

// findBlock locates a `declare module '<path>'` block. It returns the
// block span, whether a block exists, and whether its braces pair up.
// An unparsable block does not end the search: a later parsable block —
// such as the fallback a previous run appended past a corrupt one — is
// preferred, so repeated synthesis merges into it instead of stacking
// fresh fallbacks.
func findBlock(src, module string) (start, end int, ok, parsable bool) {
	for _, quote := range []string{"'", "\""} {
		marker := "declare module " + quote + module + quote
		offset := 0
		for {
			idx := strings.Index(src[offset:], marker)
			if idx < 0 {
				break
			}
			idx += offset
			if !ok {
				start, end, ok = idx, len(src), true
			}
			if braceIdx := strings.IndexByte(src[idx:], '{'); braceIdx >= 0 {
				if blockEnd, balanced := extract.Balanced(src, idx+braceIdx); balanced {
					return idx, blockEnd, true, true
				}
			}
			offset = idx + len(marker)
		}
	}
	return start, end, ok, false
}

var componentDecl = regexp.MustCompile(`export const ([A-Za-z_$][A-Za-z0-9_$]*): ComponentType<\{`)
var propLine = regexp.MustCompile(`([A-Za-z_$][A-Za-z0-9_$:-]*)\?: unknown;`)

// parseBlock recovers the component/prop structure of a previously
// synthesized block so it can be merged rather than duplicated.
func parseBlock(block string) map[string]map[string]bool {
	comps := make(map[string]map[string]bool)

	for _, loc := range componentDecl.FindAllStringSubmatchIndex(block, -1) {
		name := block[loc[2]:loc[3]]
		open := loc[1] - 1 // the '{' consumed by the pattern
		end, balanced := extract.Balanced(block, open)
		if !balanced {
			continue
		}
		props := make(map[string]bool)
		for _, p := range propLine.FindAllStringSubmatch(block[open:end], -1) {
			props[p[1]] = true
		}
		comps[name] = props
	}

	return comps
}

// renderBlock emits one declare-module block with sorted components and
// props, so repeated synthesis is byte-stable.
func renderBlock(module string, comps map[string]map[string]bool) string {
	names := make([]string, 0, len(comps))
	for c := range comps {
		names = append(names, c)
	}
	sort.Strings(names)

	var sb strings.Builder
	fmt.Fprintf(&sb, "declare module '%s' {\n", module)
	sb.WriteString("  import type { ComponentType } from 'react';\n")
	for _, name := range names {
		props := make([]string, 0, len(comps[name]))
		for p := range comps[name] {
			props = append(props, p)
		}
		sort.Strings(props)

		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  export const %s: ComponentType<{\n", name)
		for _, p := range props {
			fmt.Fprintf(&sb, "    %s?: unknown;\n", p)
		}
		sb.WriteString("    [prop: string]: any;\n")
		sb.WriteString("  }>;\n")
	}
	// No trailing newline: a merged block replaces exactly the span of the
	// old one, so surrounding whitespace must stay with the surroundings.
	sb.WriteString("}")
	return sb.String()
}

// appendBlock adds a block to the end of the file, separated by a blank
// line when content precedes it.
func appendBlock(src, block string) string {
	if strings.TrimSpace(src) == "" {
		return block + "\n"
	}
	return strings.TrimRight(src, "\n") + "\n\n" + block + "\n"
}

func fallbackHeader(module string) string {
	return fmt.Sprintf("// propshift: existing block for '%s' could not be parsed; merged copy below.\n", module)
}

func cloneComponents(src map[string]map[string]bool) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(src))
	for c, props := range src {
		cp := make(map[string]bool, len(props))
		for p := range props {
			cp[p] = true
		}
		out[c] = cp
	}
	return out
}

func union(set map[string]bool, p string) map[string]bool {
	if set == nil {
		set = make(map[string]bool)
	}
	set[p] = true
	return set
}
