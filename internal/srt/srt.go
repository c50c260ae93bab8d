package srt

import (
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

// DefaultDuration is how long each subtitle stays on screen, in seconds.
const DefaultDuration = 5.0

// Block is one numbered subtitle cue.
type Block struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Document is an ordered list of cues.
type Document struct {
	Blocks []Block
}

// Skipped describes an entry left out of a document.
type Skipped struct {
	Position  int
	Timestamp string
	Reason    string
}

// Build converts entries into cues. Entries with an empty subtitle or an
// unparsable timestamp are skipped; the remaining cues are numbered densely from 1.
func Build(entries []transcript.Entry, duration float64) (Document, []Skipped) {
	if duration <= 0 {
		duration = DefaultDuration
	}

	var doc Document
	var skipped []Skipped
	for i, e := range entries {
		text := strings.TrimSpace(e.Subtitle)
		ts := strings.TrimSpace(e.Timestamp)
		if ts == "" || text == "" {
			skipped = append(skipped, Skipped{Position: i, Timestamp: ts, Reason: "empty timestamp or subtitle"})
			continue
		}
		start, ok := ParseTimestamp(ts)
		if !ok {
			skipped = append(skipped, Skipped{Position: i, Timestamp: ts, Reason: "invalid timestamp"})
			continue
		}
		doc.Blocks = append(doc.Blocks, Block{
			Index: len(doc.Blocks) + 1,
			Start: start,
			End:   start + duration,
			Text:  text,
		})
	}
	return doc, skipped
}

// Empty reports whether the document has no cues.
func (d Document) Empty() bool {
	return len(d.Blocks) == 0
}

// String renders the document in SubRip syntax.
func (d Document) String() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		sb.WriteString(strconv.Itoa(b.Index))
		sb.WriteString("\n")
		sb.WriteString(FormatSeconds(b.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatSeconds(b.End))
		sb.WriteString("\n")
		sb.WriteString(b.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Encode builds and renders entries, failing when no cue survives.
func Encode(entries []transcript.Entry, duration float64) (string, []Skipped, error) {
	doc, skipped := Build(entries, duration)
	if doc.Empty() {
		return "", skipped, apperr.New(apperr.KindNoValidSubtitles, "No valid subtitles generated for SRT.")
	}
	return doc.String(), skipped, nil
}
