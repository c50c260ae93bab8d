package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/reelscript/internal/logger"
)

// Process generates a transcript for every link in linkFile and writes the
// configured output formats. The link file is archived afterwards even when
// some links failed; the failures are returned joined. A cancelled run leaves
// the file in the inbox so the next startup scan picks it up again.
func (p *implProcessor) Process(ctx context.Context, linkFile string) error {
	startTime := time.Now()
	base := strings.TrimSuffix(filepath.Base(linkFile), filepath.Ext(linkFile))

	p.logger.Info(ctx, "Processing link file: %s", linkFile)

	links, err := readLinks(linkFile)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		p.logger.Warn(ctx, "No links found in %s", linkFile)
	}

	if err := p.ensureDirs(); err != nil {
		return err
	}

	var errs []error
	written := 0
	for i, link := range links {
		name := outputName(base, i, len(links))
		files, err := p.processLink(ctx, link, name)
		if err != nil {
			p.logger.Error(ctx, "Failed to process %s: %s", link, logger.FormatError(err))
			errs = append(errs, fmt.Errorf("%s: %w", link, err))
			continue
		}
		written += len(files)
		for _, f := range files {
			p.logger.Info(ctx, "Output: %s", f)
		}
	}

	if err := ctx.Err(); err != nil {
		p.logger.Warn(ctx, "Interrupted %s after %d/%d links; leaving it in the inbox",
			filepath.Base(linkFile), len(links)-len(errs), len(links))
		return fmt.Errorf("process %s: %w", filepath.Base(linkFile), err)
	}

	if err := p.moveToArchived(ctx, linkFile); err != nil {
		p.logger.Warn(ctx, "Failed to move link file to archived folder: %v", err)
	}

	p.logger.Info(ctx, "Finished %s: %d/%d links, %d files in %s",
		filepath.Base(linkFile), len(links)-len(errs), len(links), written, time.Since(startTime).Round(time.Millisecond))

	return errors.Join(errs...)
}

func (p *implProcessor) processLink(ctx context.Context, link, name string) ([]string, error) {
	if p.slots.busy() {
		p.logger.Debug(ctx, "Waiting for an upstream slot: %s", link)
	}
	release, err := p.slots.take(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	entries, err := p.generator.Transcript(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("generate transcript: %w", err)
	}
	return p.writeOutputs(ctx, name, link, entries)
}

// outputName is base for a single link and base-N (1-based) otherwise.
func outputName(base string, i, total int) string {
	if total <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, i+1)
}
