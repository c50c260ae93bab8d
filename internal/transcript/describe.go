package transcript

import (
	"encoding/json"
	"fmt"
)

const describeLimit = 120

// describe renders a decoded JSON value compactly for error messages,
// cut at describeLimit runes.
func describe(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	runes := []rune(string(b))
	if len(runes) > describeLimit {
		return string(runes[:describeLimit]) + "..."
	}
	return string(runes)
}
