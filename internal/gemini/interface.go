package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Client sends one generation request to Gemini and returns the text of the
// first candidate.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request describes a single generation call.
type Request struct {
	Prompt string

	// MediaURI attaches a remote media file (a YouTube link) to the prompt.
	MediaURI      string
	MediaMIMEType string

	ResponseMIMEType string
	Temperature      *float32
	Schema           *genai.Schema
}

// contentGenerator is the subset of genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type generatorFactory func(ctx context.Context, apiKey string) (contentGenerator, error)
