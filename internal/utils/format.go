package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatINR formats an amount as Indian rupees with lakh/crore digit
// grouping, e.g. 1234567.8 -> "₹12,34,568". Amounts are rounded to the
// nearest rupee for display.
func FormatINR(amount float64) string {
	negative := amount < 0
	rounded := int64(math.Round(math.Abs(amount)))
	digits := fmt.Sprintf("%d", rounded)

	var grouped string
	if len(digits) <= 3 {
		grouped = digits
	} else {
		// Last three digits form one group, the rest group in pairs.
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(append(parts, tail), ",")
	}

	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// Round1 rounds to one decimal place, the display precision for percentages.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
