package transcript

import (
	"github.com/nguyentantai21042004/reelscript/internal/logger"
)

type implNormalizer struct {
	format TimestampFormat
	logger logger.Logger
}

// New creates a Normalizer expecting timestamps in the given format.
func New(format TimestampFormat, log logger.Logger) Normalizer {
	if _, ok := formatPatterns[format]; !ok {
		format = FormatHMSMillis
	}
	if log == nil {
		log = logger.Nop()
	}
	return &implNormalizer{
		format: format,
		logger: log,
	}
}
