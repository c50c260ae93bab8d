package transcript

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
)

// Normalize validates the top-level array and every element. A single
// structurally broken element fails the whole transcript.
func (n *implNormalizer) Normalize(ctx context.Context, value any) ([]Entry, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, apperr.New(apperr.KindNotAList, "response is not a list: %s", describe(value))
	}

	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		entry, err := toEntry(item)
		if err != nil {
			return nil, err.AtIndex(i)
		}

		if !n.format.Matches(entry.Timestamp) {
			n.logger.Warn(ctx, "Timestamp format mismatch at index %d: %q (expected %s)", i, entry.Timestamp, n.format.Layout())
		}
		if entry.Subtitle == "" {
			n.logger.Warn(ctx, "Empty subtitle at index %d (timestamp %q)", i, entry.Timestamp)
		}
		entries = append(entries, entry)
	}

	n.logger.Debug(ctx, "Normalized %d transcript entries", len(entries))
	return entries, nil
}

func toEntry(item any) (Entry, *apperr.Error) {
	obj, ok := item.(map[string]any)
	if !ok {
		return Entry{}, apperr.New(apperr.KindInvalidEntryFormat, "invalid transcript item format: %s", describe(item))
	}

	rawTS, hasTS := obj["timestamp"]
	rawSub, hasSub := obj["subtitle"]
	if !hasTS || !hasSub {
		return Entry{}, apperr.New(apperr.KindInvalidEntryFormat, "invalid transcript item format: missing \"timestamp\" or \"subtitle\" in %s", describe(item))
	}

	ts, ok := rawTS.(string)
	if !ok {
		return Entry{}, apperr.New(apperr.KindInvalidEntryFormat, "invalid transcript item format: \"timestamp\" is not a string in %s", describe(item))
	}
	sub, ok := rawSub.(string)
	if !ok {
		return Entry{}, apperr.New(apperr.KindInvalidEntryFormat, "invalid transcript item format: \"subtitle\" is not a string in %s", describe(item))
	}

	return Entry{
		Timestamp: strings.TrimSpace(ts),
		Subtitle:  strings.TrimSpace(sub),
	}, nil
}
