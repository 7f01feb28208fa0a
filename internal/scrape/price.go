package scrape

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// priceRunPattern finds the first contiguous numeric run: an optional sign
// followed by digits and the separators '.' and ','.
var priceRunPattern = regexp.MustCompile(`[+-]?[0-9][0-9.,]*`)

// NormalizePrice converts a free-form numeric string into a canonical
// dot-decimal string. When both separators occur, the one appearing later
// in the run is the decimal separator and the other is stripped as a
// thousands separator; a single separator kind is always treated as the
// decimal separator. Returns "" for any input with no valid numeric run;
// a valid result is never negative and never empty.
func NormalizePrice(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\u00a0' {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return ""
	}

	run := priceRunPattern.FindString(cleaned)
	if run == "" {
		return ""
	}

	canonical := canonicalDecimal(run)
	if canonical == "" {
		return ""
	}

	value, err := decimal.NewFromString(canonical)
	if err != nil || value.IsNegative() {
		return ""
	}

	return stripTrailingZeros(value.String())
}

// canonicalDecimal rewrites a numeric run into dot-decimal form, or ""
// when the separator layout cannot form a single decimal number.
func canonicalDecimal(run string) string {
	// A separator with no following digit carries no information
	run = strings.TrimRight(run, ".,")
	if run == "" {
		return ""
	}

	lastDot := strings.LastIndex(run, ".")
	lastComma := strings.LastIndex(run, ",")

	var decimalSep, thousandsSep string
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			decimalSep, thousandsSep = ".", ","
		} else {
			decimalSep, thousandsSep = ",", "."
		}
	case lastComma >= 0:
		decimalSep = ","
	case lastDot >= 0:
		decimalSep = "."
	default:
		return run
	}

	if thousandsSep != "" {
		run = strings.ReplaceAll(run, thousandsSep, "")
	}
	if strings.Count(run, decimalSep) > 1 {
		return ""
	}
	return strings.Replace(run, decimalSep, ".", 1)
}

// stripTrailingZeros drops trailing fractional zeros and a dangling dot,
// falling back to "0" rather than an empty result.
func stripTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return "0"
	}
	return s
}
