package processor

import "context"

// Processor turns one link file from the inbox into transcript files.
type Processor interface {
	Process(ctx context.Context, linkFile string) error
}
