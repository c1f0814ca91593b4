package support

import "strconv"

// HumanMilliseconds renders a millisecond duration in μs, ms or s.
func HumanMilliseconds(ms float64, precision int) string {
	switch {
	case ms < 1:
		return strconv.FormatFloat(round(ms*1000, precision), 'f', -1, 64) + "μs"
	case ms < 1000:
		return strconv.FormatFloat(round(ms, precision), 'f', -1, 64) + "ms"
	default:
		return strconv.FormatFloat(round(ms/1000, precision), 'f', -1, 64) + "s"
	}
}
