// Package currency provides parsing and formatting of German-locale
// monetary amounts on top of shopspring/decimal.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EuroSign is the symbol appended by Format.
const EuroSign = "€"

// Parse converts a German-locale monetary string into a decimal euro amount.
// Accepted inputs: "1.234,56", "1234,56", "1.234,56 €", "1234", "-12,50".
// The dot is a thousands separator and the comma the decimal separator.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimSuffix(cleaned, EuroSign)
	cleaned = strings.TrimSuffix(cleaned, "EUR")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(cleaned, "-") {
		negative = true
		cleaned = cleaned[1:]
	}

	// Thousands separators must come in groups of three after the first.
	if strings.Contains(cleaned, ".") {
		intPart := cleaned
		if i := strings.IndexByte(cleaned, ','); i >= 0 {
			intPart = cleaned[:i]
		}
		groups := strings.Split(intPart, ".")
		for i, g := range groups {
			if g == "" || (i > 0 && len(g) != 3) || (i == 0 && len(g) > 3) {
				return decimal.Zero, fmt.Errorf("malformed amount %q", s)
			}
		}
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	if strings.Contains(cleaned, ",") {
		return decimal.Zero, fmt.Errorf("malformed amount %q", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// Format renders a decimal euro amount in German locale with the euro sign,
// e.g. "1.234,56 €". Amounts are rounded to cents.
func Format(d decimal.Decimal) string {
	return FormatPlain(d) + " " + EuroSign
}

// FormatPlain renders a decimal euro amount in German locale without the
// euro sign, e.g. "-1.234,56".
func FormatPlain(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2) // "-1234.56"
	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, decPart := parts[0], parts[1]

	if len(intPart) > 3 {
		var b strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				b.WriteByte('.')
			}
			b.WriteRune(digit)
		}
		intPart = b.String()
	}

	out := intPart + "," + decPart
	if negative {
		out = "-" + out
	}
	return out
}
