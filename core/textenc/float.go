package textenc

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat32 renders v as the shortest decimal string that round-trips to
// the same IEEE-754 single-precision value, following ECMAScript's
// Number::toString notation rules. The caller must handle non-finite values
// (NaN, +/-Inf) separately; FormatFloat32 panics on them.
func FormatFloat32(v float32) string {
	return formatShortest(float64(v), 32)
}

// FormatFloat64 is FormatFloat32's double-precision counterpart.
func FormatFloat64(v float64) string {
	return formatShortest(v, 64)
}

// formatShortest implements the ECMAScript Number::toString (radix 10)
// algorithm over the shortest round-tripping digit string Go's strconv
// produces for the given bit size.
func formatShortest(v float64, bitSize int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic("textenc: formatShortest called with non-finite value")
	}

	neg := math.Signbit(v)
	if neg {
		v = -v
	}

	if v == 0 {
		// ECMAScript renders negative zero as "0".
		return "0"
	}

	// 'e' with prec=-1 yields the shortest decimal that round-trips, in the
	// form "d.ddde±dd" (or "de±dd" for a single significant digit).
	sci := strconv.AppendFloat(nil, v, 'e', -1, bitSize)
	mantissa, exp := splitSci(sci)

	digits := strings.Replace(mantissa, ".", "", 1)
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		digits = "0"
	}

	k := len(digits)
	n := exp + 1 // ECMAScript's n: value == digits * 10^(n-k)

	s := ecmaNumberToString(digits, k, n)
	if neg {
		return "-" + s
	}
	return s
}

// splitSci parses Go's 'e'-format shortest output ("d.ddde±dd" or "de±dd")
// into its mantissa digits (without the decimal point removed) and base-10
// exponent of the leading digit.
func splitSci(b []byte) (mantissa string, exp int) {
	s := string(b)
	ei := strings.IndexByte(s, 'e')
	mantissa = s[:ei]
	exp, _ = strconv.Atoi(s[ei+1:])
	return mantissa, exp
}

// ecmaNumberToString implements steps 5-7 of ECMAScript's Number::toString:
// given the significant digit string s (k digits, no leading/trailing
// zeros, s != "0") and n such that the value equals s * 10^(n-k), produce
// the canonical textual form.
func ecmaNumberToString(s string, k, n int) string {
	switch {
	case k <= n && n <= 21:
		// Integer value; pad with zeros up to the decimal point.
		return s + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return s[:n] + "." + s[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + s
	default:
		var b strings.Builder
		b.WriteByte(s[0])
		if k > 1 {
			b.WriteByte('.')
			b.WriteString(s[1:])
		}
		b.WriteByte('e')
		e := n - 1
		if e >= 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(e))
		return b.String()
	}
}
