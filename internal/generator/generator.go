package generator

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
	"github.com/nguyentantai21042004/reelscript/internal/caption"
	"github.com/nguyentantai21042004/reelscript/internal/extract"
	"github.com/nguyentantai21042004/reelscript/internal/gemini"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

// ValidateLink accepts any link starting with "http".
func ValidateLink(link string) error {
	if !strings.HasPrefix(strings.TrimSpace(link), "http") {
		return apperr.New(apperr.KindInvalidInput, "invalid or missing YouTube link provided")
	}
	return nil
}

func (g *implGenerator) Transcript(ctx context.Context, link string) ([]transcript.Entry, error) {
	if err := ValidateLink(link); err != nil {
		return nil, err
	}
	link = strings.TrimSpace(link)
	g.logger.Info(ctx, "Starting transcript generation for %s", link)

	text, err := g.client.Generate(ctx, gemini.Request{
		Prompt:        buildTranscriptPrompt(g.format),
		MediaURI:      link,
		MediaMIMEType: g.mediaMIME,
		Temperature:   g.transcriptTemp,
		Schema:        gemini.TranscriptSchema(),
	})
	if err != nil {
		return nil, err
	}
	g.logger.Debug(ctx, "Raw transcript response: %s", extract.Snippet(text))

	value, err := g.extract(ctx, text, "transcript")
	if err != nil {
		return nil, err
	}

	entries, err := g.normalizer.Normalize(ctx, value)
	if err != nil {
		return nil, err
	}
	g.logger.Info(ctx, "Transcript generated with %d entries", len(entries))
	return entries, nil
}

func (g *implGenerator) Captions(ctx context.Context, req CaptionRequest) ([]string, error) {
	style := strings.TrimSpace(req.Style)
	if style == "" {
		return nil, apperr.New(apperr.KindInvalidInput, `Missing "style".`)
	}

	language := g.defaultLanguage
	if strings.TrimSpace(req.Language) != "" {
		lang, ok := caption.CanonicalLanguage(req.Language)
		if !ok {
			return nil, apperr.New(apperr.KindInvalidInput, `Invalid "language". Use "English" or "Cantonese".`)
		}
		language = lang
	}

	count := req.Count
	if count == 0 {
		count = g.defaultCount
	}
	if !caption.ValidCount(count) {
		return nil, apperr.New(apperr.KindInvalidInput, `Invalid "num_captions" parameter (must be an integer between %d and %d).`, caption.MinCount, caption.MaxCount)
	}

	text := transcript.Text(req.Entries)
	if text == "" {
		g.logger.Warn(ctx, "Empty transcript provided for caption generation")
		return nil, apperr.New(apperr.KindInvalidInput, "transcript is empty, cannot generate captions")
	}

	g.logger.Info(ctx, "Starting caption generation (style %q, language %s, count %d)", style, language, count)

	raw, err := g.client.Generate(ctx, gemini.Request{
		Prompt:           buildCaptionPrompt(count, language, style, text),
		ResponseMIMEType: "application/json",
		Temperature:      g.captionTemp,
	})
	if err != nil {
		return nil, err
	}
	g.logger.Debug(ctx, "Raw captions response: %s", extract.Snippet(raw))

	value, err := g.extract(ctx, raw, "captions")
	if err != nil {
		return nil, err
	}

	captions, err := caption.Normalize(ctx, g.logger, value, count)
	if err != nil {
		return nil, err
	}
	g.logger.Info(ctx, "Generated %d captions", len(captions))
	return captions, nil
}

func (g *implGenerator) extract(ctx context.Context, text, what string) (any, error) {
	res := extract.Run(text, extract.Chain...)
	if !res.OK() {
		g.logger.Error(ctx, "Could not parse %s response: %s (response %s)", what, res.Detail, extract.Snippet(text))
		return nil, res.Err()
	}
	return res.Value, nil
}
