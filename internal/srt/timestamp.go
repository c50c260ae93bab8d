package srt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTimestamp converts "H:M:S.mmm" or "M:S.mmm" into seconds. The seconds
// component may carry a fraction. It reports false for any other shape.
func ParseTimestamp(value string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")

	var hours, minutes int
	var secText string
	var err error
	switch len(parts) {
	case 3:
		if hours, err = parseWhole(parts[0]); err != nil {
			return 0, false
		}
		if minutes, err = parseWhole(parts[1]); err != nil {
			return 0, false
		}
		secText = parts[2]
	case 2:
		if minutes, err = parseWhole(parts[0]); err != nil {
			return 0, false
		}
		secText = parts[1]
	default:
		return 0, false
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(secText), 64)
	if err != nil || seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, false
	}
	return float64(hours*3600+minutes*60) + seconds, true
}

func parseWhole(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative component %d", n)
	}
	return n, nil
}

// FormatSeconds renders seconds as "HH:MM:SS,mmm". Negative input clamps to zero.
func FormatSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	// Round to microseconds first so 5.123 does not come out as 5,122.
	micros := int64(math.Round(seconds * 1e6))
	millis := micros / 1000

	hours := millis / 3_600_000
	minutes := (millis % 3_600_000) / 60_000
	secs := (millis % 60_000) / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}
