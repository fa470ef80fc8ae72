package audit

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatDuration renders d in the largest fitting unit with at most two
// decimals, trailing zeros trimmed. Sub-millisecond values are prefixed with
// "~" since wall clock timing is not that precise. With fullUnits the unit
// is spelled out and pluralized ("1.5 seconds", "1 hour").
func FormatDuration(d time.Duration, fullUnits bool) string {
	ms := float64(d) / float64(time.Millisecond)

	var value float64
	var short, long string
	switch {
	case ms >= float64(time.Hour/time.Millisecond):
		value, short, long = ms/float64(time.Hour/time.Millisecond), "h", "hour"
	case ms >= float64(time.Minute/time.Millisecond):
		value, short, long = ms/float64(time.Minute/time.Millisecond), "m", "minute"
	case ms >= 1000:
		value, short, long = ms/1000, "s", "second"
	case ms >= 1:
		value, short, long = ms, "ms", "millisecond"
	case ms >= 0.001:
		value, short, long = ms*1000, "μs", "microsecond"
	default:
		value, short, long = ms*1_000_000, "ns", "nanosecond"
	}

	result := strconv.FormatFloat(value, 'f', 2, 64)
	result = strings.TrimSuffix(strings.TrimRight(result, "0"), ".")

	if short == "μs" || short == "ns" {
		result = "~" + result
	}

	unit := short
	if fullUnits {
		unit = long
		if math.Floor(value) != 1 || strings.Contains(result, ".") {
			unit += "s"
		}
	}
	return result + " " + unit
}
