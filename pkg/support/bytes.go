package support

import (
	"fmt"
	"math"
	"strconv"
)

var (
	humanByteUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}
	byteUnits      = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}
	bitUnits       = []string{"B", "Kb", "Mb", "Gb", "Tb", "Pb", "Eb", "Zb", "Yb"}
)

// HumanBytes picks the unit from the number of decimal digits in bytes and
// divides by 1024 per step. Plain byte counts are printed without decimals.
func HumanBytes(bytes int64, decimals int) string {
	factor := (len(strconv.FormatInt(bytes, 10)) - 1) / 3
	factor = min(factor, len(humanByteUnits)-1)
	if factor == 0 {
		decimals = 0
	}

	return fmt.Sprintf("%.*f%s", decimals, float64(bytes)/math.Pow(1024, float64(factor)), humanByteUnits[factor])
}

// FormatBytes renders bytes with a 1024 base, e.g. "1.5 KB". Non-positive
// input yields "0".
func FormatBytes(bytes int64, precision int) string {
	if bytes <= 0 {
		return "0"
	}

	value, unit := scale(float64(bytes), 1024, precision)
	return formatScaled(value) + " " + byteUnits[unit]
}

// FormatBits renders bits with a 1000 base, e.g. "1.5 Mb". Without suffix
// only the scaled number is returned. Non-positive input yields "0".
func FormatBits(bits int64, precision int, suffix bool) string {
	if bits <= 0 {
		return "0"
	}

	value, unit := scale(float64(bits), 1000, precision)
	if !suffix {
		return formatScaled(value)
	}
	return formatScaled(value) + " " + bitUnits[unit]
}

// BytesToBits saturates at math.MaxInt64 instead of overflowing.
func BytesToBits(bytes int64) int64 {
	if bytes <= 0 {
		return 0
	}
	if bytes > math.MaxInt64/8 {
		return math.MaxInt64
	}
	return bytes * 8
}

func scale(n, base float64, precision int) (float64, int) {
	unit := 0
	for unit < len(byteUnits)-1 && n >= math.Pow(base, float64(unit+1)) {
		unit++
	}
	return round(n/math.Pow(base, float64(unit)), precision), unit
}

// formatScaled prints at most two decimals and drops trailing zeros.
func formatScaled(v float64) string {
	return strconv.FormatFloat(round(v, 2), 'f', -1, 64)
}

func round(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}
