package srt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

// Parse reads SubRip text back into a document. Cue numbers are optional;
// multi-line cue text is joined with spaces.
func Parse(content string) (Document, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	var doc Document
	for n, raw := range strings.Split(strings.TrimSpace(content), "\n\n") {
		lines := nonBlankLines(raw)
		if len(lines) == 0 {
			continue
		}

		if _, err := strconv.Atoi(lines[0]); err == nil && len(lines) > 1 {
			lines = lines[1:]
		}

		start, end, err := parseTiming(lines[0])
		if err != nil {
			return Document{}, fmt.Errorf("cue %d: %w", n+1, err)
		}
		doc.Blocks = append(doc.Blocks, Block{
			Index: len(doc.Blocks) + 1,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[1:], " "),
		})
	}

	if doc.Empty() {
		return Document{}, fmt.Errorf("no cues found")
	}
	return doc, nil
}

// Entries converts cues to transcript entries with HH:MM:SS.mmm timestamps.
func (d Document) Entries() []transcript.Entry {
	entries := make([]transcript.Entry, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		entries = append(entries, transcript.Entry{
			Timestamp: strings.Replace(FormatSeconds(b.Start), ",", ".", 1),
			Subtitle:  b.Text,
		})
	}
	return entries
}

func parseTiming(line string) (float64, float64, error) {
	from, to, ok := strings.Cut(line, "-->")
	if !ok {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, ok := ParseTimestamp(strings.ReplaceAll(strings.TrimSpace(from), ",", "."))
	if !ok {
		return 0, 0, fmt.Errorf("invalid timestamp %q", strings.TrimSpace(from))
	}
	// Position hints may follow the end time.
	toFields := strings.Fields(to)
	if len(toFields) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp in %q", line)
	}
	end, ok := ParseTimestamp(strings.ReplaceAll(toFields[0], ",", "."))
	if !ok {
		return 0, 0, fmt.Errorf("invalid timestamp %q", toFields[0])
	}
	return start, end, nil
}

func nonBlankLines(block string) []string {
	var out []string
	for _, l := range strings.Split(block, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
