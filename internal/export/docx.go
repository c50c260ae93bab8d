package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// writeDOCX renders one paragraph per subtitle, prefixed by its timestamp.
func writeDOCX(title string, entries []transcript.Entry, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	if title = strings.TrimSpace(title); title != "" {
		addStyledRun(doc.AddParagraph(""), title, true, titleSize)
		doc.AddParagraph("")
	}

	for _, e := range entries {
		text := strings.TrimSpace(e.Subtitle)
		if text == "" {
			continue
		}
		p := doc.AddParagraph("")
		if ts := strings.TrimSpace(e.Timestamp); ts != "" {
			addStyledRun(p, "["+ts+"] ", true, fontSize)
		}
		addStyledRun(p, text, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

// docxBytes goes through a temporary file since the document is only saved
// to a path.
func docxBytes(title string, entries []transcript.Entry) ([]byte, error) {
	dir, err := os.MkdirTemp("", "reelscript-docx-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "transcript.docx")
	if err := writeDOCX(title, entries, path); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return os.ReadFile(path)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
