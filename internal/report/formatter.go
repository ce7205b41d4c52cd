package report

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with precision decimals and thousand separators.
// Example: FormatFloat(-1234.567, 2) returns "-1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}

	formatted := fmt.Sprintf("%.*f", precision, f)
	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign, formatted = "-", formatted[1:]
	}

	whole, frac, hasFrac := strings.Cut(formatted, ".")
	var n int64
	if _, err := fmt.Sscan(whole, &n); err != nil {
		return sign + formatted
	}
	out := sign + FormatNumber(n)
	if hasFrac {
		out += "." + frac
	}
	if strings.TrimRight(out, "0.,") == "-" {
		return out[1:]
	}
	return out
}

// FormatValue picks a precision suited to the magnitude of v: large
// values are shown whole, small ones in scientific notation.
func FormatValue(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs == 0:
		return "0"
	case abs >= 1000:
		return FormatFloat(v, 0)
	case abs >= 1:
		return FormatFloat(v, 2)
	case abs >= 0.001:
		return FormatFloat(v, 4)
	default:
		return fmt.Sprintf("%.3e", v)
	}
}

// FormatLarge formats large numbers with abbreviated notation.
// Example: FormatLarge(1500000000) returns "~1.5 billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
