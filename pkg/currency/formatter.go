// Package currency renders fares for display. Fares in this domain are
// whole-unit amounts, so formatting never emits fractional digits.
package currency

import (
	"fmt"
	"math"
)

var symbols = map[string]string{
	"JPY": "¥",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"KRW": "₩",
	"THB": "฿",
	"SGD": "S$",
	"IDR": "Rp",
}

// Format renders an amount with its currency symbol and thousands
// separators, e.g. Format(52000, "JPY") == "¥52,000". Currencies without a
// known symbol are prefixed with their ISO code.
func Format(amount float64, code string) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	formatted := addThousandsSeparator(fmt.Sprintf("%.0f", rounded), ",")

	var result string
	if sym, ok := symbols[code]; ok {
		result = sym + formatted
	} else {
		result = code + " " + formatted
	}
	if negative {
		result = "-" + result
	}

	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
