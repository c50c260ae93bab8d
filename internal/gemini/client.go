package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
	"google.golang.org/genai"
)

// Generate calls the model once per available key until one succeeds or a
// non-rate-limit error occurs. The whole call shares one deadline.
func (c *implClient) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := buildContents(req)
	config := buildConfig(req)

	var lastErr error
	for range len(c.apiKeys) {
		idx, key := c.key()

		gen, err := c.newGenerator(ctx, key)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey(idx)
			continue
		}

		result, err := gen.GenerateContent(ctx, c.model, contents, config)
		if err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", apperr.Wrap(apperr.KindUpstreamTimeout, err, "gemini request timed out after %s", c.timeout)
			}
			if isRateLimited(err) {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				c.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", apperr.Wrap(apperr.KindUpstream, err, "generate content")
		}

		text := responseText(result)
		if strings.TrimSpace(text) == "" {
			return "", apperr.New(apperr.KindUpstream, "empty response from Gemini%s", finishDetail(result))
		}
		return text, nil
	}

	return "", apperr.Wrap(apperr.KindUpstream, lastErr, "all API keys exhausted")
}

func (c *implClient) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

// rotateKey advances past idx unless another request already did.
func (c *implClient) rotateKey(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentKey == idx {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
}

func buildContents(req Request) []*genai.Content {
	if req.MediaURI == "" {
		return genai.Text(req.Prompt)
	}
	mime := req.MediaMIMEType
	if mime == "" {
		mime = DefaultMediaMIMEType
	}
	parts := []*genai.Part{
		genai.NewPartFromText(req.Prompt),
		genai.NewPartFromURI(req.MediaURI, mime),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func buildConfig(req Request) *genai.GenerateContentConfig {
	if req.Temperature == nil && req.ResponseMIMEType == "" && req.Schema == nil {
		return nil
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:      req.Temperature,
		ResponseMIMEType: req.ResponseMIMEType,
		ResponseSchema:   req.Schema,
	}
	if cfg.ResponseSchema != nil && cfg.ResponseMIMEType == "" {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

func isRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil {
		return ""
	}
	return result.Text()
}

func finishDetail(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0] == nil {
		return ""
	}
	if reason := result.Candidates[0].FinishReason; reason != "" {
		return fmt.Sprintf(" (finish reason %s)", reason)
	}
	return ""
}
