package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry is one timestamped line of a generated transcript.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Subtitle  string `json:"subtitle"`
}

// TimestampFormat selects which timestamp shape the model is asked for
// and which shape the normalizer expects back.
type TimestampFormat string

const (
	FormatHMSMillis TimestampFormat = "hms_millis"
	FormatMSMillis  TimestampFormat = "ms_millis"
	FormatMS        TimestampFormat = "ms"
)

var formatPatterns = map[TimestampFormat]*regexp.Regexp{
	FormatHMSMillis: regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}$`),
	FormatMSMillis:  regexp.MustCompile(`^\d{2}:\d{2}\.\d{3}$`),
	FormatMS:        regexp.MustCompile(`^\d{2}:\d{2}$`),
}

// ParseTimestampFormat validates a configured format name. Empty means the default.
func ParseTimestampFormat(s string) (TimestampFormat, error) {
	f := TimestampFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatHMSMillis, nil
	}
	if _, ok := formatPatterns[f]; !ok {
		return "", fmt.Errorf("unknown timestamp format %q", s)
	}
	return f, nil
}

// Layout is the human-readable layout used in prompts.
func (f TimestampFormat) Layout() string {
	switch f {
	case FormatMSMillis:
		return "MM:SS.mmm"
	case FormatMS:
		return "MM:SS"
	default:
		return "HH:MM:SS.mmm"
	}
}

// Example returns a sample timestamp in this format.
func (f TimestampFormat) Example() string {
	switch f {
	case FormatMSMillis:
		return "00:05.123"
	case FormatMS:
		return "00:05"
	default:
		return "00:00:05.123"
	}
}

// Matches reports whether ts has the expected shape.
func (f TimestampFormat) Matches(ts string) bool {
	re, ok := formatPatterns[f]
	if !ok {
		re = formatPatterns[FormatHMSMillis]
	}
	return re.MatchString(ts)
}

// Text joins the non-blank subtitles with single spaces.
func Text(entries []Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if s := strings.TrimSpace(e.Subtitle); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
