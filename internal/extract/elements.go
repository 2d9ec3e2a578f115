package extract

import "regexp"

// tagAnchor marks candidate component opening tags: '<' followed by a
// capitalized name, optionally dotted for namespaced components. Lowercase
// host elements are not rewrite targets, so they are not anchored.
var tagAnchor = regexp.MustCompile(`<([A-Z][A-Za-z0-9_$]*(?:\.[A-Za-z][A-Za-z0-9_$]*)*)`)

// Elements returns every recognized component opening tag with its paired
// attribute list, plus spans for tags the scanner could not close —
// typically an unbalanced brace running to end of file. Nested elements
// inside attribute values are found by the same flat scan.
func Elements(src string) ([]Element, []Skipped) {
	var elements []Element
	var skipped []Skipped

	for _, loc := range tagAnchor.FindAllStringSubmatchIndex(src, -1) {
		open := loc[0]
		tagStart, tagEnd := loc[2], loc[3]

		// "</Tag>" closing tags share the anchor shape when preceded by a
		// slash; they carry no attributes and are not extracted.
		if open > 0 && src[open-1] == '/' {
			continue
		}

		el := Element{
			Tag:     src[tagStart:tagEnd],
			TagSpan: Span{Start: tagStart, End: tagEnd},
			Span:    Span{Start: open},
		}

		end, ok := parseAttrs(src, tagEnd, &el)
		if !ok {
			// A scan that runs off the end of input is a real unbalanced
			// construct worth flagging. Anything else is the anchor
			// matching a non-JSX '<' (a comparison, a generic argument)
			// and is not an element at all.
			if end >= len(src) {
				skipped = append(skipped, Skipped{
					Span:   Span{Start: open, End: end},
					Reason: "unterminated tag: unbalanced brace or quote at end of file",
				})
			}
			continue
		}
		el.Span.End = end
		elements = append(elements, el)
	}

	return elements, skipped
}

// parseAttrs scans the attribute list of an opening tag starting just past
// the tag name. It pairs every attribute with its full value by tracking
// brace depth and quote state rather than matching greedily to the first
// closing brace. Returns the offset just past '>' and whether the tag closed.
func parseAttrs(src string, i int, el *Element) (int, bool) {
	for {
		i = skipSpace(src, i)
		if i >= len(src) {
			return i, false
		}

		switch src[i] {
		case '>':
			return i + 1, true

		case '/':
			if i+1 < len(src) && src[i+1] == '>' {
				el.SelfClosing = true
				return i + 2, true
			}
			return i, false

		case '{':
			// Spread attribute: {...props}. Consumed but not recorded as a
			// named attribute.
			end, ok := scanBalanced(src, i)
			if !ok {
				return end, false
			}
			el.Attrs = append(el.Attrs, Attr{RawValue: src[i:end]})
			i = end

		default:
			if !isAttrNameStart(src[i]) {
				return i, false
			}
			attr, end, ok := parseAttr(src, i)
			if !ok {
				return end, false
			}
			el.Attrs = append(el.Attrs, attr)
			i = end
		}
	}
}

// parseAttr scans one name[=value] attribute starting at the name.
func parseAttr(src string, i int) (Attr, int, bool) {
	nameStart := i
	for i < len(src) && isAttrNameChar(src[i]) {
		i++
	}
	attr := Attr{
		Name:     src[nameStart:i],
		NameSpan: Span{Start: nameStart, End: i},
	}

	j := skipSpace(src, i)
	if j >= len(src) || src[j] != '=' {
		// Bare boolean attribute.
		return attr, i, true
	}
	j = skipSpace(src, j+1)
	if j >= len(src) {
		return attr, j, false
	}

	valStart := j
	switch src[j] {
	case '"', '\'':
		end, ok := scanQuoted(src, j)
		if !ok {
			return attr, end, false
		}
		attr.RawValue = src[valStart:end]
		return attr, end, true
	case '{':
		end, ok := scanBalanced(src, j)
		if !ok {
			return attr, end, false
		}
		attr.RawValue = src[valStart:end]
		return attr, end, true
	default:
		return attr, j, false
	}
}

// Balanced consumes a brace expression starting at the '{' at src[i] and
// returns the offset just past its matching '}'. It honors nested braces,
// string literals, and template literals, and reports false when the
// expression never closes.
func Balanced(src string, i int) (int, bool) {
	return scanBalanced(src, i)
}

// scanBalanced consumes a brace expression starting at '{', honoring nested
// braces, string literals, and template literals with interpolations.
// Returns the offset just past the matching '}' and whether it was found.
func scanBalanced(src string, i int) (int, bool) {
	depth := 0
	for i < len(src) {
		switch src[i] {
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
			if depth == 0 {
				return i, true
			}
		case '"', '\'':
			end, ok := scanQuoted(src, i)
			if !ok {
				return end, false
			}
			i = end
		case '`':
			end, ok := scanTemplate(src, i)
			if !ok {
				return end, false
			}
			i = end
		default:
			i++
		}
	}
	return i, false
}

// scanQuoted consumes a single- or double-quoted string starting at the
// opening quote, honoring backslash escapes.
func scanQuoted(src string, i int) (int, bool) {
	quote := src[i]
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1, true
		case '\n':
			// Plain string literals do not span lines.
			return i, false
		default:
			i++
		}
	}
	return i, false
}

// scanTemplate consumes a template literal starting at the backtick,
// including nested ${...} interpolations.
func scanTemplate(src string, i int) (int, bool) {
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '`':
			return i + 1, true
		case '$':
			if i+1 < len(src) && src[i+1] == '{' {
				end, ok := scanBalanced(src, i+1)
				if !ok {
					return end, false
				}
				i = end
			} else {
				i++
			}
		default:
			i++
		}
	}
	return i, false
}

// Attribute names admit dashes and colons (data-*, aria-*, xml namespaces)
// beyond plain identifier characters.
func isAttrNameStart(c byte) bool {
	return isIdentStart(c)
}

func isAttrNameChar(c byte) bool {
	return isIdentChar(c) || c == '-' || c == ':'
}
