// Package extract locates imports and JSX element usages in raw source text
// without a full-language parser. Recognition is pattern-based: regular
// expression anchors find candidate constructs, then a small hand scanner
// walks the text tracking brace, paren, and quote state to pair attribute
// lists correctly. Anything that cannot be classified unambiguously is
// returned as a skipped span rather than an error — the extractor never
// fails, it returns partial results.
package extract

// Span is a half-open [Start, End) byte range in the source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// ImportedName is one named specifier in an import clause.
type ImportedName struct {
	// Name is the exported name in the source module.
	Name string
	// Alias is the local binding when the specifier uses "as"; empty
	// otherwise.
	Alias string
	// TypeOnly marks an inline "type X" specifier.
	TypeOnly bool
	// NameSpan covers the Name token only, not the alias.
	NameSpan Span
}

// Local returns the binding the specifier introduces into the file.
func (n ImportedName) Local() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}

// Import is one recognized import statement. Order-preserving: statements
// are returned in source order, many per file.
type Import struct {
	// Path is the module path between the quotes.
	Path string
	// Default is the default-import binding, empty if none.
	Default string
	// Namespace is the "* as X" binding, empty if none.
	Namespace string
	// Names are the named specifiers in brace order.
	Names []ImportedName
	// TypeOnly marks a statement-level "import type".
	TypeOnly bool
	// Span covers the whole statement including a trailing semicolon.
	Span Span
	// PathSpan covers the path text between (not including) the quotes.
	PathSpan Span
	// Quote is the quote byte used around the path.
	Quote byte
	// Indent is the leading whitespace of the statement's line.
	Indent string
	// Semicolon reports whether the statement ends with a semicolon.
	Semicolon bool
}

// Attr is one attribute in a JSX opening tag.
type Attr struct {
	// Name is the attribute name; empty for a spread attribute.
	Name string
	// NameSpan covers the name token only.
	NameSpan Span
	// RawValue is the value text including its quotes or braces; empty
	// for a bare boolean attribute.
	RawValue string
}

// Element is one recognized JSX opening tag with its attribute list.
type Element struct {
	// Tag is the element name, e.g. "Modal" or "Menu.Item".
	Tag string
	// TagSpan covers the tag name token after '<'.
	TagSpan Span
	// Attrs are the attributes in source order.
	Attrs []Attr
	// Span covers the opening tag from '<' through '>'.
	Span Span
	// SelfClosing reports a trailing '/' before '>'.
	SelfClosing bool
}

// Skipped is a region the extractor could not classify.
type Skipped struct {
	Span   Span   `json:"span"`
	Reason string `json:"reason"`
}
