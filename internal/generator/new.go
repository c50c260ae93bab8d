package generator

import (
	"github.com/nguyentantai21042004/reelscript/internal/caption"
	"github.com/nguyentantai21042004/reelscript/internal/gemini"
	"github.com/nguyentantai21042004/reelscript/internal/logger"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

type Options struct {
	Client        gemini.Client
	Logger        logger.Logger
	Format        transcript.TimestampFormat
	MediaMIMEType string

	TranscriptTemperature *float32
	CaptionTemperature    *float32

	DefaultLanguage string
	DefaultCount    int
}

type implGenerator struct {
	client     gemini.Client
	logger     logger.Logger
	format     transcript.TimestampFormat
	normalizer transcript.Normalizer
	mediaMIME  string

	transcriptTemp *float32
	captionTemp    *float32

	defaultLanguage string
	defaultCount    int
}

// New creates a Generator on top of a Gemini client.
func New(opts Options) Generator {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	format := opts.Format
	if format == "" {
		format = transcript.FormatHMSMillis
	}
	g := &implGenerator{
		client:          opts.Client,
		logger:          log,
		format:          format,
		normalizer:      transcript.New(format, log),
		mediaMIME:       opts.MediaMIMEType,
		transcriptTemp:  opts.TranscriptTemperature,
		captionTemp:     opts.CaptionTemperature,
		defaultLanguage: opts.DefaultLanguage,
		defaultCount:    opts.DefaultCount,
	}
	if g.transcriptTemp == nil {
		g.transcriptTemp = float32Ptr(1.0)
	}
	if g.captionTemp == nil {
		g.captionTemp = float32Ptr(0.9)
	}
	if g.defaultLanguage == "" {
		g.defaultLanguage = caption.DefaultLanguage
	}
	if g.defaultCount == 0 {
		g.defaultCount = caption.DefaultCount
	}
	return g
}

func float32Ptr(v float32) *float32 {
	return &v
}
