package output

import (
	"fmt"
	"strings"
)

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// The higherIsBetter parameter controls which direction renders green.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && higherIsBetter) || (!isPositive && !higherIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.0f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.0f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// ErrorDelta renders a before/after diagnostic count pair. A nil count
// renders as "?" — the external checker could not produce a number.
func ErrorDelta(before, after *int) string {
	if before == nil || after == nil {
		return StyleMuted.Render("? → ?")
	}
	pair := fmt.Sprintf("%d → %d", *before, *after)
	switch {
	case *after < *before:
		return StyleSuccess.Render(pair)
	case *after > *before:
		return StyleError.Render(pair)
	default:
		return StyleMuted.Render(pair)
	}
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
