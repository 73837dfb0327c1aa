package utils

import (
	"strconv"
	"strings"
)

const byteUnitStep = 1024

var byteUnitSuffixes = [...]string{"b", "kb", "mb", "gb", "tb"}

// FormatFileSize renders a byte count with a lower-case unit, keeping one decimal below ten.
func FormatFileSize(byteCount int64) string {
	if byteCount < byteUnitStep {
		return strconv.FormatInt(max(byteCount, 0), 10) + byteUnitSuffixes[0]
	}
	scaled := float64(byteCount)
	suffixIndex := 0
	for scaled >= byteUnitStep && suffixIndex < len(byteUnitSuffixes)-1 {
		scaled /= byteUnitStep
		suffixIndex++
	}
	precision := 0
	if scaled < 10 {
		precision = 1
	}
	formatted := strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', precision, 64), ".0")
	return formatted + byteUnitSuffixes[suffixIndex]
}
