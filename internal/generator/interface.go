package generator

import (
	"context"

	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

// Generator runs the two model-backed pipelines: transcript from a video
// link, and caption variations from a transcript.
type Generator interface {
	Transcript(ctx context.Context, link string) ([]transcript.Entry, error)
	Captions(ctx context.Context, req CaptionRequest) ([]string, error)
}

// CaptionRequest asks for Count captions in Language with the given Style.
// Empty Language and zero Count fall back to the generator defaults.
// Captions validates every field; callers only decode.
type CaptionRequest struct {
	Entries  []transcript.Entry
	Style    string
	Language string
	Count    int
}
