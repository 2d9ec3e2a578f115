package engine

import (
	"github.com/blackwell-systems/propshift/internal/catalog"
	"github.com/blackwell-systems/propshift/internal/extract"
)

// propReplacements queues attribute-name edits for every element whose tag
// and attribute match a prop rename. Exclusions are decided here, against
// the immutable extracted construct list, never against mutated text.
// Replacements cover exactly the attribute's name span, so a rule for
// isOpen can never touch onIsOpenChange — the span boundaries are the
// word boundaries.
func propReplacements(elements []extract.Element, cat *catalog.Catalog) []replacement {
	var reps []replacement

	for _, el := range elements {
		for _, attr := range el.Attrs {
			if attr.Name == "" {
				continue // spread attribute
			}
			rule := propRuleFor(cat, el.Tag, attr.Name)
			if rule == nil {
				continue
			}
			if cat.Excluded(el.Tag, attr.Name) {
				continue
			}
			reps = append(reps, replacement{
				Start: attr.NameSpan.Start,
				End:   attr.NameSpan.End,
				Text:  rule.To,
				Rule:  rule.RuleName(),
			})
		}
	}

	return reps
}

// propRuleFor picks the rename that applies to (tag, attr). A rule naming
// the tag explicitly wins over an all-tags rule for the same attribute.
func propRuleFor(cat *catalog.Catalog, tag, attr string) *catalog.PropRename {
	var generic *catalog.PropRename
	for i := range cat.PropRenames {
		r := &cat.PropRenames[i]
		if r.From != attr || !r.Matches(tag) {
			continue
		}
		if r.Specific() {
			return r
		}
		if generic == nil {
			generic = r
		}
	}
	return generic
}
