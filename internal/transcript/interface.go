package transcript

import "context"

// Normalizer turns a JSON value recovered from a model reply into transcript entries.
type Normalizer interface {
	Normalize(ctx context.Context, value any) ([]Entry, error)
}
