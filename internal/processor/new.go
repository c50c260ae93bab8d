package processor

import (
	"github.com/nguyentantai21042004/reelscript/internal/config"
	"github.com/nguyentantai21042004/reelscript/internal/export"
	"github.com/nguyentantai21042004/reelscript/internal/generator"
	"github.com/nguyentantai21042004/reelscript/internal/logger"
)

type implProcessor struct {
	cfg       *config.Config
	generator generator.Generator
	logger    logger.Logger
	formats   []export.Format
	slots     *upstreamSlots
}

// New creates a Processor. Upstream calls across all files share one
// concurrency limit of performance.max_concurrent.
func New(cfg *config.Config, gen generator.Generator, log logger.Logger) Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &implProcessor{
		cfg:       cfg,
		generator: gen,
		logger:    log,
		formats:   []export.Format{export.FormatJSON, export.FormatSRT, export.FormatDOCX},
		slots:     newUpstreamSlots(cfg.Performance.MaxConcurrent),
	}
}
