package engine

import (
	"strings"

	"github.com/blackwell-systems/propshift/internal/catalog"
	"github.com/blackwell-systems/propshift/internal/extract"
)

// importReplacements queues edits for import-path remaps. A remap covering
// every named symbol (or carrying no symbol list) rewrites only the path
// text, preserving the statement's formatting. A remap covering a subset
// splits the statement in two: the uncovered symbols stay on the original
// path, the covered ones move to the new path.
func importReplacements(src string, imports []extract.Import, cat *catalog.Catalog) []replacement {
	var reps []replacement

	for _, imp := range imports {
		rule := remapFor(cat, imp.Path)
		if rule == nil {
			continue
		}

		var moved, stay []extract.ImportedName
		for _, n := range imp.Names {
			if rule.Covers(n.Name) {
				moved = append(moved, n)
			} else {
				stay = append(stay, n)
			}
		}

		if len(rule.Symbols) > 0 && len(moved) == 0 {
			continue // rule names symbols this statement does not import
		}

		wholeMove := len(stay) == 0 && imp.Default == "" && imp.Namespace == ""
		if len(rule.Symbols) == 0 || wholeMove {
			// Path-only rewrite keeps the author's formatting intact.
			reps = append(reps, replacement{
				Start: imp.PathSpan.Start,
				End:   imp.PathSpan.End,
				Text:  rule.ToPath,
				Rule:  rule.RuleName(),
			})
			continue
		}

		// Split: rebuild the original statement without the moved symbols,
		// then append a new statement for them on the new path.
		eol := lineEnding(src)
		first := renderImport(imp, imp.Default, imp.Namespace, stay, imp.Path)
		second := renderImport(imp, "", "", moved, rule.ToPath)
		reps = append(reps, replacement{
			Start: imp.Span.Start,
			End:   imp.Span.End,
			Text:  first + eol + imp.Indent + second,
			Rule:  rule.RuleName(),
		})
	}

	return reps
}

// remapFor returns the remap whose source path matches, or nil.
func remapFor(cat *catalog.Catalog, path string) *catalog.ImportRemap {
	for i := range cat.ImportRemaps {
		if cat.ImportRemaps[i].FromPath == path {
			return &cat.ImportRemaps[i]
		}
	}
	return nil
}

// renderImport reconstructs an import statement in the original
// statement's style: its quote character, semicolon convention, and
// statement-level type modifier.
func renderImport(style extract.Import, def, namespace string, names []extract.ImportedName, path string) string {
	var sb strings.Builder
	sb.WriteString("import ")
	if style.TypeOnly {
		sb.WriteString("type ")
	}

	wroteClause := false
	if def != "" {
		sb.WriteString(def)
		wroteClause = true
	}
	if namespace != "" {
		if wroteClause {
			sb.WriteString(", ")
		}
		sb.WriteString("* as ")
		sb.WriteString(namespace)
		wroteClause = true
	}
	if len(names) > 0 {
		if wroteClause {
			sb.WriteString(", ")
		}
		sb.WriteString("{ ")
		for i, n := range names {
			if i > 0 {
				sb.WriteString(", ")
			}
			if n.TypeOnly {
				sb.WriteString("type ")
			}
			sb.WriteString(n.Name)
			if n.Alias != "" {
				sb.WriteString(" as ")
				sb.WriteString(n.Alias)
			}
		}
		sb.WriteString(" }")
		wroteClause = true
	}

	if wroteClause {
		sb.WriteString(" from ")
	}
	sb.WriteByte(style.Quote)
	sb.WriteString(path)
	sb.WriteByte(style.Quote)
	if style.Semicolon {
		sb.WriteString(";")
	}
	return sb.String()
}
