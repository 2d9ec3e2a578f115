package extract

import (
	"regexp"
	"strings"
)

// importAnchor marks candidate import statements at line starts. The scanner
// takes over from the keyword; the anchor only narrows where to look.
var importAnchor = regexp.MustCompile(`(?m)^([ \t]*)import\b`)

// Imports returns every recognized import statement in source order, plus
// spans for any statement the scanner could not follow to a quoted path.
func Imports(src string) ([]Import, []Skipped) {
	var imports []Import
	var skipped []Skipped

	for _, loc := range importAnchor.FindAllStringSubmatchIndex(src, -1) {
		indent := src[loc[2]:loc[3]]
		kwStart := loc[3]

		// import(...) at statement position is a dynamic import call and
		// import.meta a property access; neither is a static statement.
		if j := skipSpace(src, kwStart+len("import")); j < len(src) && (src[j] == '(' || src[j] == '.') {
			continue
		}

		imp, end, ok := parseImport(src, kwStart)
		if !ok {
			skipped = append(skipped, Skipped{
				Span:   Span{Start: kwStart, End: end},
				Reason: "import statement without a recognizable module path",
			})
			continue
		}
		imp.Indent = indent
		imports = append(imports, imp)
	}

	return imports, skipped
}

// parseImport scans one import statement starting at the "import" keyword.
// It returns the parsed statement, the scan end offset, and whether the
// statement was recognized.
func parseImport(src string, start int) (Import, int, bool) {
	imp := Import{Span: Span{Start: start}}
	i := start + len("import")

	i = skipSpace(src, i)
	if i >= len(src) {
		return imp, i, false
	}

	// Side-effect import: import './styles.css'
	if src[i] == '\'' || src[i] == '"' {
		return finishPath(src, i, imp)
	}

	// Statement-level type modifier: import type { ... } from '...'
	if hasKeyword(src, i, "type") {
		next := skipSpace(src, i+len("type"))
		// "import type from 'x'" would make type a default binding; only
		// treat it as a modifier when a clause follows.
		if next < len(src) && (src[next] == '{' || src[next] == '*' || isIdentStart(src[next])) {
			imp.TypeOnly = true
			i = next
		}
	}

	// Default import.
	if i < len(src) && isIdentStart(src[i]) && !hasKeyword(src, i, "from") {
		nameStart := i
		for i < len(src) && isIdentChar(src[i]) {
			i++
		}
		imp.Default = src[nameStart:i]
		i = skipSpace(src, i)
		if i < len(src) && src[i] == ',' {
			i = skipSpace(src, i+1)
		}
	}

	// Namespace import: * as ns
	if i < len(src) && src[i] == '*' {
		i = skipSpace(src, i+1)
		if !hasKeyword(src, i, "as") {
			return imp, i, false
		}
		i = skipSpace(src, i+len("as"))
		nameStart := i
		for i < len(src) && isIdentChar(src[i]) {
			i++
		}
		imp.Namespace = src[nameStart:i]
		i = skipSpace(src, i)
	}

	// Named specifiers: { A, B as C, type D }
	if i < len(src) && src[i] == '{' {
		names, end, ok := parseNamedSpecifiers(src, i)
		if !ok {
			return imp, end, false
		}
		imp.Names = names
		i = skipSpace(src, end)
	}

	if !hasKeyword(src, i, "from") {
		return imp, i, false
	}
	i = skipSpace(src, i+len("from"))
	if i >= len(src) || (src[i] != '\'' && src[i] != '"') {
		return imp, i, false
	}

	return finishPath(src, i, imp)
}

// finishPath reads the quoted module path at src[i] and closes the statement.
func finishPath(src string, i int, imp Import) (Import, int, bool) {
	quote := src[i]
	pathStart := i + 1
	end := strings.IndexByte(src[pathStart:], quote)
	if end < 0 {
		return imp, len(src), false
	}
	pathEnd := pathStart + end

	imp.Quote = quote
	imp.Path = src[pathStart:pathEnd]
	imp.PathSpan = Span{Start: pathStart, End: pathEnd}

	i = pathEnd + 1
	if i < len(src) && src[i] == ';' {
		imp.Semicolon = true
		i++
	}
	imp.Span.End = i
	return imp, i, true
}

// parseNamedSpecifiers parses a { A, B as C } clause starting at the brace.
// It returns the specifiers, the offset just past the closing brace, and
// whether the clause closed before end of input.
func parseNamedSpecifiers(src string, braceStart int) ([]ImportedName, int, bool) {
	var names []ImportedName
	i := braceStart + 1

	for {
		i = skipSpace(src, i)
		if i >= len(src) {
			return names, i, false
		}
		if src[i] == '}' {
			return names, i + 1, true
		}
		if src[i] == ',' {
			i++
			continue
		}

		var n ImportedName
		if hasKeyword(src, i, "type") {
			n.TypeOnly = true
			i = skipSpace(src, i+len("type"))
		}
		if i >= len(src) || !isIdentStart(src[i]) {
			return names, i, false
		}
		nameStart := i
		for i < len(src) && isIdentChar(src[i]) {
			i++
		}
		n.Name = src[nameStart:i]
		n.NameSpan = Span{Start: nameStart, End: i}

		j := skipSpace(src, i)
		if hasKeyword(src, j, "as") {
			j = skipSpace(src, j+len("as"))
			aliasStart := j
			for j < len(src) && isIdentChar(src[j]) {
				j++
			}
			n.Alias = src[aliasStart:j]
			i = j
		}

		names = append(names, n)
	}
}

// hasKeyword reports whether src[i:] starts with the keyword followed by a
// non-identifier character.
func hasKeyword(src string, i int, kw string) bool {
	if i+len(kw) > len(src) || src[i:i+len(kw)] != kw {
		return false
	}
	j := i + len(kw)
	return j >= len(src) || !isIdentChar(src[j])
}

// skipSpace advances past whitespace, including newlines inside multi-line
// clauses.
func skipSpace(src string, i int) int {
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
