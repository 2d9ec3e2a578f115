package engine

import (
	"regexp"

	"github.com/blackwell-systems/propshift/internal/catalog"
	"github.com/blackwell-systems/propshift/internal/extract"
)

// identifierReplacements queues edits for identifier renames: the import
// specifier and every JSX tag usage move together, so a removed icon never
// ends up imported under one name and rendered under another.
func identifierReplacements(src string, imports []extract.Import, cat *catalog.Catalog) []replacement {
	var reps []replacement

	for _, imp := range imports {
		reps = append(reps, identifierImportEdits(src, imp, cat)...)
	}

	for i := range cat.IdentifierRenames {
		rule := &cat.IdentifierRenames[i]
		if identifierImported(imports, rule) {
			reps = append(reps, tagUsageEdits(src, rule)...)
		}
	}

	return reps
}

// identifierImported reports whether any import binds the rule's source
// identifier, directly or via its configured module path.
func identifierImported(imports []extract.Import, rule *catalog.IdentifierRename) bool {
	for _, imp := range imports {
		if rule.FromPath != "" && imp.Path != rule.FromPath {
			continue
		}
		for _, n := range imp.Names {
			if n.Name == rule.From {
				return true
			}
		}
	}
	return false
}

// identifierImportEdits rewrites one import statement's specifiers for all
// identifier rules that hit it. Renames without a module move edit the name
// token in place; renames that also move modules rebuild the statement,
// grouping moved identifiers by their target path.
func identifierImportEdits(src string, imp extract.Import, cat *catalog.Catalog) []replacement {
	type move struct {
		rule *catalog.IdentifierRename
		name extract.ImportedName
	}

	var inPlace []move
	var moves []move
	var stay []extract.ImportedName

	for _, n := range imp.Names {
		matched := false
		for i := range cat.IdentifierRenames {
			rule := &cat.IdentifierRenames[i]
			if rule.From != n.Name {
				continue
			}
			if rule.FromPath != "" && imp.Path != rule.FromPath {
				continue
			}
			matched = true
			if rule.ToPath == "" || rule.ToPath == imp.Path {
				inPlace = append(inPlace, move{rule, n})
			} else {
				moves = append(moves, move{rule, n})
			}
			break
		}
		if !matched {
			stay = append(stay, n)
		}
	}

	var reps []replacement

	if len(moves) == 0 {
		// Token edits only; formatting stays untouched.
		for _, m := range inPlace {
			reps = append(reps, replacement{
				Start: m.name.NameSpan.Start,
				End:   m.name.NameSpan.End,
				Text:  m.rule.To,
				Rule:  m.rule.RuleName(),
			})
		}
		return reps
	}

	// At least one specifier changes modules: rebuild the whole statement.
	// In-place renames fold into the retained statement under their new
	// names; moved ones group by target path, one statement per path.
	for _, m := range inPlace {
		renamed := m.name
		renamed.Name = m.rule.To
		stay = append(stay, renamed)
	}

	eol := lineEnding(src)
	var text string
	if len(stay) > 0 || imp.Default != "" || imp.Namespace != "" {
		text = renderImport(imp, imp.Default, imp.Namespace, stay, imp.Path)
	}

	byPath := make(map[string][]extract.ImportedName)
	var pathOrder []string
	for _, m := range moves {
		renamed := m.name
		renamed.Name = m.rule.To
		// An alias survives the move: local usages bind the alias, not
		// the exported name.
		if renamed.Alias == renamed.Name {
			renamed.Alias = ""
		}
		if _, ok := byPath[m.rule.ToPath]; !ok {
			pathOrder = append(pathOrder, m.rule.ToPath)
		}
		byPath[m.rule.ToPath] = append(byPath[m.rule.ToPath], renamed)
	}
	for _, p := range pathOrder {
		stmt := renderImport(imp, "", "", byPath[p], p)
		if text == "" {
			text = stmt
		} else {
			text += eol + imp.Indent + stmt
		}
	}

	rep := replacement{
		Start: imp.Span.Start,
		End:   imp.Span.End,
		Text:  text,
		Rule:  moves[0].rule.RuleName(),
	}
	return append(reps, rep)
}

// tagUsageEdits rewrites every JSX tag usage of the identifier, opening
// and closing forms alike. Matching is bounded by non-identifier
// characters: a rule for AddIcon never touches AddIconButton.
func tagUsageEdits(src string, rule *catalog.IdentifierRename) []replacement {
	re := regexp.MustCompile(`(</?)(` + regexp.QuoteMeta(rule.From) + `)\b`)

	var reps []replacement
	for _, loc := range re.FindAllStringSubmatchIndex(src, -1) {
		// A dotted tag rooted at the identifier (<AddIcon.Badge>) is a
		// member usage with its own shape; leave it alone.
		if end := loc[5]; end < len(src) && src[end] == '.' {
			continue
		}
		reps = append(reps, replacement{
			Start: loc[4],
			End:   loc[5],
			Text:  rule.To,
			Rule:  rule.RuleName(),
		})
	}
	return reps
}
