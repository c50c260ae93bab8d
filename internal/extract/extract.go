// Package extract recovers a JSON value from the free-form text a generative
// model returns. Two shapes are understood: bare JSON and JSON wrapped in a
// markdown code fence. Anything else is reported, never guessed at.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
)

var (
	reJSONFence = regexp.MustCompile("(?is)```json[ \\t]*(.*?)```")
	reAnyFence  = regexp.MustCompile("(?s)```[ \\t]*(.*?)```")
)

// Result is the tagged outcome of one extraction attempt.
type Result struct {
	Value  any
	Kind   apperr.Kind
	Detail string
	Cause  error
}

// OK reports whether the attempt produced a value.
func (r Result) OK() bool {
	return r.Kind == ""
}

// Err converts a failed result into a classified error. It returns nil for success.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	if r.Cause != nil {
		return apperr.Wrap(r.Kind, r.Cause, "%s", r.Detail)
	}
	return apperr.New(r.Kind, "%s", r.Detail)
}

// Attempt is a single total parsing strategy.
type Attempt func(text string) Result

// Chain is the default ordered list of attempts.
var Chain = []Attempt{Direct, Fenced}

// Extract runs Chain over text and returns the first successful value.
func Extract(text string) (any, error) {
	r := Run(text, Chain...)
	if !r.OK() {
		return nil, r.Err()
	}
	return r.Value, nil
}

// Run tries each attempt in order. The first success wins; otherwise the
// failure of the last attempt is returned.
func Run(text string, attempts ...Attempt) Result {
	last := Result{Kind: apperr.KindNoParsableJSON, Detail: "no extraction attempts configured"}
	for _, attempt := range attempts {
		last = attempt(text)
		if last.OK() {
			return last
		}
	}
	return last
}

// Direct parses the trimmed text as a complete JSON document.
func Direct(text string) Result {
	value, err := parse(strings.TrimSpace(text))
	if err != nil {
		return Result{
			Kind:   apperr.KindNoParsableJSON,
			Detail: "response is not valid JSON",
			Cause:  err,
		}
	}
	return Result{Value: value}
}

// Fenced parses the content of the first json-tagged fenced block in text,
// or of the first untagged fence when no block carries the tag.
func Fenced(text string) Result {
	m := reJSONFence.FindStringSubmatch(text)
	if m == nil {
		m = reAnyFence.FindStringSubmatch(text)
	}
	if m == nil {
		return Result{
			Kind:   apperr.KindNoParsableJSON,
			Detail: "failed to parse response as JSON (no fenced JSON block found)",
		}
	}
	body := strings.TrimSpace(m[1])
	if body == "" {
		return Result{
			Kind:   apperr.KindEmptyExtraction,
			Detail: "extracted JSON from markdown is empty",
		}
	}
	value, err := parse(body)
	if err != nil {
		return Result{
			Kind:   apperr.KindMalformedJSON,
			Detail: "failed to decode extracted JSON",
			Cause:  err,
		}
	}
	return Result{Value: value}
}

func parse(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Snippet shortens a model response for log lines.
func Snippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
