package export

import (
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
)

// Format is a download/output format for a transcript.
type Format string

const (
	FormatJSON Format = "json"
	FormatSRT  Format = "srt"
	FormatDOCX Format = "docx"
)

// ParseFormat resolves a requested format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatSRT, FormatDOCX:
		return f, nil
	default:
		return "", apperr.New(apperr.KindInvalidInput, "unsupported format %q (use json, srt or docx)", s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ContentType returns the HTTP content type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSRT:
		return "text/plain; charset=utf-8"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/json"
	}
}
