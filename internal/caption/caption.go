// Package caption validates caption variations returned by the model.
package caption

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
	"github.com/nguyentantai21042004/reelscript/internal/logger"
	"golang.org/x/text/cases"
)

const (
	MinCount     = 1
	MaxCount     = 5
	DefaultCount = 3
)

// Languages accepted for caption generation, keyed by case-folded name.
var Languages = map[string]string{
	"english":   "English",
	"cantonese": "Cantonese",
}

// DefaultLanguage is used when a request names none.
const DefaultLanguage = "Cantonese"

// CanonicalLanguage resolves a case-insensitive language name.
func CanonicalLanguage(name string) (string, bool) {
	lang, ok := Languages[cases.Fold().String(strings.TrimSpace(name))]
	return lang, ok
}

// ValidCount reports whether n is an allowed number of variations.
func ValidCount(n int) bool {
	return n >= MinCount && n <= MaxCount
}

// Normalize checks that value is a list of strings, drops blank captions and
// keeps at most requested entries in their original order.
func Normalize(ctx context.Context, log logger.Logger, value any, requested int) ([]string, error) {
	if log == nil {
		log = logger.Nop()
	}
	if !ValidCount(requested) {
		return nil, apperr.New(apperr.KindInvalidInput, "number of captions must be between %d and %d, got %d", MinCount, MaxCount, requested)
	}

	items, ok := value.([]any)
	if !ok {
		return nil, apperr.New(apperr.KindInvalidCaptionShape, "invalid format received for captions: expected a JSON list of strings")
	}

	captions := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, apperr.New(apperr.KindInvalidCaptionShape, "invalid format received for captions: element %d is not a string", i).AtIndex(i)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			log.Debug(ctx, "Skipping blank caption at index %d", i)
			continue
		}
		captions = append(captions, s)
	}

	if len(captions) > requested {
		log.Debug(ctx, "Model returned %d captions, keeping the first %d", len(captions), requested)
		captions = captions[:requested]
	}
	if len(captions) == 0 {
		return nil, apperr.New(apperr.KindEmptyCaptionResult, "caption list is empty after processing")
	}
	return captions, nil
}
