package ui

import (
	"fmt"
	"strings"
)

// formatCurrency renders an amount with thousands separators and two
// decimals, e.g. 1234567.5 -> "1,234,567.50"
func formatCurrency(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	whole := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(whole, ".", 2)

	digits := parts[0]
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, ",") + "." + parts[1]
	if negative {
		return "-" + out
	}
	return out
}

// formatPercent renders a percentage with two decimals
func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
