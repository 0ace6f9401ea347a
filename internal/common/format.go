package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats an Up money value string (e.g. "-12.34") as a dollar
// amount with comma separators and the currency code appended for non-AUD
// currencies. Unparsable values are returned verbatim.
func FormatAmount(value, currencyCode string) string {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}
	return formatDecimal(d, currencyCode)
}

// FormatDecimal formats a decimal as a dollar amount with comma separators.
func FormatDecimal(d decimal.Decimal, currencyCode string) string {
	return formatDecimal(d, currencyCode)
}

func formatDecimal(d decimal.Decimal, currencyCode string) string {
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	whole := groupThousands(parts[0])

	s := fmt.Sprintf("$%s.%s", whole, parts[1])
	if negative {
		s = "-" + s
	}
	if currencyCode != "" && currencyCode != "AUD" {
		s += " " + currencyCode
	}
	return s
}

// groupThousands inserts comma separators into a digit string.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

// SumAmounts sums Up money value strings. The bool is false when any value
// fails to parse, in which case the sum excludes the bad value.
func SumAmounts(values []string) (decimal.Decimal, bool) {
	total := decimal.Zero
	ok := true
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			ok = false
			continue
		}
		total = total.Add(d)
	}
	return total, ok
}
