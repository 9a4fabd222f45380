package textenc

import "fmt"

// TimeUnit identifies the resolution of an encoded epoch-offset timestamp.
type TimeUnit int

const (
	UnitMillis TimeUnit = iota
	UnitMicros
	UnitNanos
)

const secondsPerDay = 86400

// FormatDate renders a signed day count since 1970-01-01 as "YYYY-MM-DD"
// using a proleptic Gregorian calendar, correctly for dates before 1970 and
// years outside [0, 9999].
func FormatDate(daysSinceEpoch int32) string {
	y, m, d := civilFromDays(int64(daysSinceEpoch))
	return formatDate(y, m, d)
}

func formatDate(year int64, month, day int) string {
	if year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -year, month, day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// civilFromDays converts a day count since 1970-01-01 into a proleptic
// Gregorian (year, month, day), per Howard Hinnant's civil_from_days
// algorithm. Valid for the full range of int64 day offsets.
func civilFromDays(z int64) (year int64, month int, day int) {
	z += 719468
	era := z
	if z < 0 {
		era -= 146096
	}
	era /= 146097
	doe := z - era*146097                                       // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365       // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)                     // [0, 365]
	mp := (5*doy + 2) / 153                                      // [0, 11]
	d := doy - (153*mp+2)/5 + 1                                  // [1, 31]
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return y, int(m), int(d)
}

// FormatTimestamp renders an epoch offset at the given unit using the short
// ISO-8601 UTC form described in spec §4.2: date always present, time
// components appended only as far as needed (fractional seconds, then
// seconds, then minutes, then hours), always suffixed 'Z' when a time
// component is present. is_adjusted_to_utc is intentionally never consulted
// here: every timestamp renders as UTC regardless of the column's flag
// (spec §9 Open Question — a deliberate, documented interoperability trap).
func FormatTimestamp(value int64, unit TimeUnit) string {
	epochSeconds, fracDigits, fracStr := decomposeEpoch(value, unit)

	days := floorDiv(epochSeconds, secondsPerDay)
	secOfDay := epochSeconds - days*secondsPerDay

	hour := secOfDay / 3600
	minute := (secOfDay % 3600) / 60
	second := secOfDay % 60

	y, mo, d := civilFromDays(days)
	date := formatDate(y, mo, d)

	switch {
	case fracDigits > 0:
		return fmt.Sprintf("%sT%02d:%02d:%02d.%sZ", date, hour, minute, second, fracStr)
	case second != 0:
		return fmt.Sprintf("%sT%02d:%02d:%02dZ", date, hour, minute, second)
	case minute != 0:
		return fmt.Sprintf("%sT%02d:%02dZ", date, hour, minute)
	case hour != 0:
		return fmt.Sprintf("%sT%02dZ", date, hour)
	default:
		return date
	}
}

// decomposeEpoch splits value (at the given unit) into whole epoch seconds
// and a right-trimmed fractional-second digit string, trimmed in groups of
// three digits (9 -> 6 -> 3 -> 0) per spec §4.2 step 2-3. Division is
// Euclidean so the fractional remainder is always non-negative, even for
// times before 1970.
func decomposeEpoch(value int64, unit TimeUnit) (epochSeconds int64, fracDigits int, fracStr string) {
	var scale int64
	var digits int
	switch unit {
	case UnitMillis:
		scale, digits = 1_000, 3
	case UnitMicros:
		scale, digits = 1_000_000, 6
	case UnitNanos:
		scale, digits = 1_000_000_000, 9
	}

	epochSeconds = floorDiv(value, scale)
	sub := value - epochSeconds*scale // in [0, scale)

	full := fmt.Sprintf("%0*d", digits, sub)
	for digits >= 3 && full[digits-3:digits] == "000" {
		digits -= 3
	}

	return epochSeconds, digits, full[:digits]
}

// floorDiv performs Euclidean (floor) integer division: the remainder
// a - floorDiv(a,b)*b is always in [0, b).
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
