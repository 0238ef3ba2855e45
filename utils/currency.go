package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount with two decimals and thousands separators,
// followed by the currency: 1250.5 -> "1 250.50 DH".
func FormatPrice(amount decimal.Decimal, currency string) string {
	fixed := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	integerPart := parts[0]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := sign + strings.Join(groups, " ") + "." + parts[1]
	if currency == "" {
		return out
	}
	return out + " " + currency
}
