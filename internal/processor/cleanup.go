package processor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
	"github.com/nguyentantai21042004/reelscript/internal/export"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

func (p *implProcessor) ensureDirs() error {
	for _, dir := range []string{p.cfg.Paths.Output, p.cfg.Paths.Archived} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}
	return nil
}

// writeOutputs writes one file per format. A transcript without any valid
// SRT block still gets its other formats.
func (p *implProcessor) writeOutputs(ctx context.Context, name, link string, entries []transcript.Entry) ([]string, error) {
	opts := export.Options{
		Title:       "Transcript: " + link,
		SRTDuration: p.cfg.Transcript.SRTDuration,
	}

	var files []string
	for _, format := range p.formats {
		path := filepath.Join(p.cfg.Paths.Output, name+format.Ext())
		skipped, err := export.WriteFile(path, format, entries, opts)
		for _, sk := range skipped {
			p.logger.Warn(ctx, "Skipping entry %d (%q) in %s: %s", sk.Position, sk.Timestamp, filepath.Base(path), sk.Reason)
		}
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNoValidSubtitles {
				p.logger.Warn(ctx, "No SRT written for %s: %v", link, err)
				continue
			}
			p.cleanupTempFiles(ctx, files)
			return nil, fmt.Errorf("write %s: %w", format, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// moveToArchived moves the link file out of the inbox. An existing file with
// the same name gets a timestamp suffix instead of being overwritten.
func (p *implProcessor) moveToArchived(ctx context.Context, linkFile string) error {
	filename := filepath.Base(linkFile)
	dest := filepath.Join(p.cfg.Paths.Archived, filename)

	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(filename)
		stamp := time.Now().Format("20060102-150405")
		dest = filepath.Join(p.cfg.Paths.Archived, strings.TrimSuffix(filename, ext)+"-"+stamp+ext)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat archived file: %w", err)
	}

	p.logger.Info(ctx, "Archiving link file: %s -> %s", linkFile, dest)
	if err := os.Rename(linkFile, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// cleanupTempFiles removes partial outputs, logging failures.
func (p *implProcessor) cleanupTempFiles(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			p.logger.Warn(ctx, "Failed to cleanup file %s: %v", path, err)
		} else {
			p.logger.Debug(ctx, "Cleaned up file: %s", path)
		}
	}
}
