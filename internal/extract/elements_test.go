package extract

import (
	"strings"
	"testing"
)

func findElement(t *testing.T, elements []Element, tag string) Element {
	t.Helper()
	for _, el := range elements {
		if el.Tag == tag {
			return el
		}
	}
	t.Fatalf("element %q not found in %d elements", tag, len(elements))
	return Element{}
}

func TestElements_SimpleTag(t *testing.T) {
	src := `<Button variant="solid" isDisabled onClick={submit}>Save</Button>`

	elements, skipped := Elements(src)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}

	el := findElement(t, elements, "Button")
	if el.SelfClosing {
		t.Error("open tag reported self-closing")
	}
	if len(el.Attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %+v", el.Attrs)
	}
	if el.Attrs[0].Name != "variant" || el.Attrs[0].RawValue != `"solid"` {
		t.Errorf("attr 0 wrong: %+v", el.Attrs[0])
	}
	if el.Attrs[1].Name != "isDisabled" || el.Attrs[1].RawValue != "" {
		t.Errorf("bare boolean attr wrong: %+v", el.Attrs[1])
	}
	if el.Attrs[2].RawValue != "{submit}" {
		t.Errorf("brace value wrong: %+v", el.Attrs[2])
	}
	if src[el.Attrs[1].NameSpan.Start:el.Attrs[1].NameSpan.End] != "isDisabled" {
		t.Error("NameSpan does not cover the attribute name")
	}
}

func TestElements_NestedBracesInValue(t *testing.T) {
	// The sx value contains nested braces; a greedy match to the first '}'
	// would truncate it.
	src := `<Box sx={{ base: { p: 2 }, md: { p: 4 } }} isActive>`

	elements, skipped := Elements(src)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}

	el := findElement(t, elements, "Box")
	if len(el.Attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %+v", el.Attrs)
	}
	if el.Attrs[0].RawValue != `{{ base: { p: 2 }, md: { p: 4 } }}` {
		t.Errorf("nested braces truncated: %q", el.Attrs[0].RawValue)
	}
	if el.Attrs[1].Name != "isActive" {
		t.Errorf("attribute after nested value lost: %+v", el.Attrs[1])
	}
}

func TestElements_ArrowFunctionValue(t *testing.T) {
	// The '>' of the arrow must not terminate the tag.
	src := `<Modal isOpen={open} onClose={() => setOpen(false)} />`

	elements, skipped := Elements(src)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}

	el := findElement(t, elements, "Modal")
	if !el.SelfClosing {
		t.Error("self-closing tag not detected")
	}
	if len(el.Attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %+v", el.Attrs)
	}
	if el.Attrs[1].RawValue != "{() => setOpen(false)}" {
		t.Errorf("arrow value wrong: %q", el.Attrs[1].RawValue)
	}
}

func TestElements_TemplateLiteralValue(t *testing.T) {
	src := "<Card className={`card ${active ? `on-${id}` : \"off\"}`} spacing={4}>"

	elements, skipped := Elements(src)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}

	el := findElement(t, elements, "Card")
	if len(el.Attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %+v", el.Attrs)
	}
	if el.Attrs[1].Name != "spacing" {
		t.Errorf("attribute after template value lost: %+v", el.Attrs[1])
	}
}

func TestElements_SpreadAttr(t *testing.T) {
	src := `<Input {...rest} isInvalid={!!error} />`

	elements, _ := Elements(src)
	el := findElement(t, elements, "Input")
	if len(el.Attrs) != 2 {
		t.Fatalf("expected spread + named attr, got %+v", el.Attrs)
	}
	if el.Attrs[0].Name != "" || el.Attrs[0].RawValue != "{...rest}" {
		t.Errorf("spread attr wrong: %+v", el.Attrs[0])
	}
	if el.Attrs[1].Name != "isInvalid" {
		t.Errorf("named attr wrong: %+v", el.Attrs[1])
	}
}

func TestElements_NamespacedTag(t *testing.T) {
	src := `<Menu.Item value="edit" isDisabled={locked}>Edit</Menu.Item>`

	elements, _ := Elements(src)
	el := findElement(t, elements, "Menu.Item")
	if len(el.Attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %+v", el.Attrs)
	}
}

func TestElements_ClosingTagNotExtracted(t *testing.T) {
	src := `<Stack spacing={2}></Stack>`

	elements, _ := Elements(src)
	count := 0
	for _, el := range elements {
		if el.Tag == "Stack" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 1 Stack element (closing tag ignored), got %d", count)
	}
}

func TestElements_NestedElementInValue(t *testing.T) {
	// The flat scan also finds the nested element inside the attribute value.
	src := `<IconButton icon={<AddIcon boxSize={3} />} isRound />`

	elements, skipped := Elements(src)
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %+v", skipped)
	}

	outer := findElement(t, elements, "IconButton")
	if len(outer.Attrs) != 2 {
		t.Fatalf("expected 2 outer attrs, got %+v", outer.Attrs)
	}

	inner := findElement(t, elements, "AddIcon")
	if len(inner.Attrs) != 1 || inner.Attrs[0].Name != "boxSize" {
		t.Errorf("inner element attrs wrong: %+v", inner.Attrs)
	}
}

func TestElements_UnbalancedAtEOFSkipped(t *testing.T) {
	// The brace never closes before EOF.
	src := "<Modal isOpen={open\n"

	elements, skipped := Elements(src)
	if len(elements) != 0 {
		t.Errorf("expected no elements, got %+v", elements)
	}
	if len(skipped) != 1 {
		t.Fatalf("expected 1 skipped span, got %d", len(skipped))
	}
	if skipped[0].Span.End != len(src) {
		t.Errorf("skip should run to EOF, got %+v", skipped[0].Span)
	}
	if !strings.Contains(skipped[0].Reason, "unterminated") {
		t.Errorf("reason = %q", skipped[0].Reason)
	}
}

func TestElements_ComparisonNotAnElement(t *testing.T) {
	src := "const more = count < Total && ready;\nconst x = items.filter(i => i.n < Max);\n"

	elements, skipped := Elements(src)
	if len(skipped) != 0 {
		t.Errorf("comparisons flagged as skips: %+v", skipped)
	}
	for _, el := range elements {
		if len(el.Attrs) > 0 {
			t.Errorf("comparison parsed as attributed element: %+v", el)
		}
	}
}
