package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/reelscript/internal/srt"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

// Options controls rendering.
type Options struct {
	Title       string
	SRTDuration float64
}

// Render returns the transcript encoded in format f. Skipped entries only
// apply to SRT.
func Render(f Format, entries []transcript.Entry, opts Options) ([]byte, []srt.Skipped, error) {
	switch f {
	case FormatSRT:
		content, skipped, err := srt.Encode(entries, opts.SRTDuration)
		if err != nil {
			return nil, skipped, err
		}
		return []byte(content), skipped, nil
	case FormatDOCX:
		data, err := docxBytes(opts.Title, entries)
		return data, nil, err
	case FormatJSON, "":
		var buf bytes.Buffer
		if err := EncodeJSON(&buf, entries); err != nil {
			return nil, nil, err
		}
		return buf.Bytes(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown export format %q", f)
	}
}

// WriteFile renders the transcript into path.
func WriteFile(path string, f Format, entries []transcript.Entry, opts Options) ([]srt.Skipped, error) {
	if f == FormatDOCX {
		return nil, writeDOCX(opts.Title, entries, path)
	}
	data, skipped, err := Render(f, entries, opts)
	if err != nil {
		return skipped, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return skipped, fmt.Errorf("write %s: %w", path, err)
	}
	return skipped, nil
}

// EncodeJSON writes entries as an indented JSON array. Non-ASCII text is
// written as-is.
func EncodeJSON(w io.Writer, entries []transcript.Entry) error {
	if entries == nil {
		entries = []transcript.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
