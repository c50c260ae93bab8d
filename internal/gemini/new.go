package gemini

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nguyentantai21042004/reelscript/internal/logger"
	"google.golang.org/genai"
)

const (
	DefaultModel         = "gemini-2.5-flash"
	DefaultTimeout       = 120 * time.Second
	DefaultMediaMIMEType = "video/mp4"
)

// Options configures a Client.
type Options struct {
	APIKeys []string
	Model   string
	Timeout time.Duration
	Logger  logger.Logger
}

type implClient struct {
	apiKeys []string
	model   string
	timeout time.Duration
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int

	newGenerator generatorFactory
}

// New creates a Client that rotates through the supplied API keys when one
// is rate limited.
func New(opts Options) (Client, error) {
	return newClient(opts, newGenAIGenerator)
}

func newClient(opts Options, factory generatorFactory) (*implClient, error) {
	if len(opts.APIKeys) == 0 {
		return nil, errors.New("gemini: at least one API key is required")
	}
	c := &implClient{
		apiKeys:      opts.APIKeys,
		model:        opts.Model,
		timeout:      opts.Timeout,
		logger:       opts.Logger,
		newGenerator: factory,
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.logger == nil {
		c.logger = logger.Nop()
	}
	return c, nil
}

func newGenAIGenerator(ctx context.Context, apiKey string) (contentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}
