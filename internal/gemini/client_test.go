package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nguyentantai21042004/reelscript/internal/apperr"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	key      string
	calls    *[]string
	response *genai.GenerateContentResponse
	err      error
	block    bool

	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	*f.calls = append(*f.calls, f.key)
	f.gotContents = contents
	f.gotConfig = config
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.response, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(text, genai.RoleModel),
		}},
	}
}

// factoryFor returns a factory handing out one fake per key.
func factoryFor(fakes map[string]*fakeGenerator) generatorFactory {
	return func(_ context.Context, key string) (contentGenerator, error) {
		f, ok := fakes[key]
		if !ok {
			return nil, errors.New("no such key")
		}
		return f, nil
	}
}

func TestGenerateSuccess(t *testing.T) {
	var calls []string
	fake := &fakeGenerator{key: "a", calls: &calls, response: textResponse(`["one"]`)}
	c, err := newClient(Options{APIKeys: []string{"a"}}, factoryFor(map[string]*fakeGenerator{"a": fake}))
	if err != nil {
		t.Fatal(err)
	}

	temp := float32(0.9)
	got, err := c.Generate(context.Background(), Request{
		Prompt:           "write captions",
		ResponseMIMEType: "application/json",
		Temperature:      &temp,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != `["one"]` {
		t.Errorf("Generate() = %q", got)
	}
	if fake.gotConfig == nil || fake.gotConfig.ResponseMIMEType != "application/json" || *fake.gotConfig.Temperature != 0.9 {
		t.Errorf("config = %+v", fake.gotConfig)
	}
	if len(fake.gotContents) != 1 || len(fake.gotContents[0].Parts) != 1 {
		t.Errorf("expected a single text part, got %+v", fake.gotContents)
	}
}

func TestGenerateAttachesMedia(t *testing.T) {
	var calls []string
	fake := &fakeGenerator{key: "a", calls: &calls, response: textResponse("[]")}
	c, _ := newClient(Options{APIKeys: []string{"a"}}, factoryFor(map[string]*fakeGenerator{"a": fake}))

	_, err := c.Generate(context.Background(), Request{
		Prompt:   "transcribe",
		MediaURI: "https://youtu.be/abc",
		Schema:   TranscriptSchema(),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	parts := fake.gotContents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	if parts[1].FileData == nil || parts[1].FileData.FileURI != "https://youtu.be/abc" || parts[1].FileData.MIMEType != DefaultMediaMIMEType {
		t.Errorf("media part = %+v", parts[1].FileData)
	}
	if fake.gotConfig.ResponseMIMEType != "application/json" {
		t.Errorf("schema requests should default to application/json, got %q", fake.gotConfig.ResponseMIMEType)
	}
}

func TestGenerateRotatesOnRateLimit(t *testing.T) {
	var calls []string
	fakes := map[string]*fakeGenerator{
		"a": {key: "a", calls: &calls, err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}},
		"b": {key: "b", calls: &calls, response: textResponse("ok")},
	}
	c, _ := newClient(Options{APIKeys: []string{"a", "b"}}, factoryFor(fakes))

	got, err := c.Generate(context.Background(), Request{Prompt: "p"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Generate() = %q", got)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Errorf("calls = %v", calls)
	}

	// The next request starts from the key that worked.
	calls = calls[:0]
	if _, err := c.Generate(context.Background(), Request{Prompt: "p"}); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || calls[0] != "b" {
		t.Errorf("second request calls = %v", calls)
	}
}

func TestGenerateAllKeysExhausted(t *testing.T) {
	var calls []string
	fakes := map[string]*fakeGenerator{
		"a": {key: "a", calls: &calls, err: errors.New("quota exceeded")},
		"b": {key: "b", calls: &calls, err: errors.New("Error 429")},
	}
	c, _ := newClient(Options{APIKeys: []string{"a", "b"}}, factoryFor(fakes))

	_, err := c.Generate(context.Background(), Request{Prompt: "p"})
	if apperr.KindOf(err) != apperr.KindUpstream {
		t.Fatalf("kind = %q, want %q (err %v)", apperr.KindOf(err), apperr.KindUpstream, err)
	}
	if len(calls) != 2 {
		t.Errorf("calls = %v", calls)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		fake     fakeGenerator
		timeout  time.Duration
		wantKind apperr.Kind
	}{
		{
			name:     "upstream failure",
			fake:     fakeGenerator{err: genai.APIError{Code: 500, Message: "boom"}},
			wantKind: apperr.KindUpstream,
		},
		{
			name:     "empty text",
			fake:     fakeGenerator{response: &genai.GenerateContentResponse{}},
			wantKind: apperr.KindUpstream,
		},
		{
			name:     "whitespace text",
			fake:     fakeGenerator{response: textResponse("  \n")},
			wantKind: apperr.KindUpstream,
		},
		{
			name:     "deadline",
			fake:     fakeGenerator{block: true},
			timeout:  20 * time.Millisecond,
			wantKind: apperr.KindUpstreamTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			fake := tt.fake
			fake.key = "a"
			fake.calls = &calls
			c, _ := newClient(Options{APIKeys: []string{"a"}, Timeout: tt.timeout}, factoryFor(map[string]*fakeGenerator{"a": &fake}))

			_, err := c.Generate(context.Background(), Request{Prompt: "p"})
			if got := apperr.KindOf(err); got != tt.wantKind {
				t.Errorf("kind = %q, want %q (err %v)", got, tt.wantKind, err)
			}
			if len(calls) != 1 {
				t.Errorf("non-rate-limit errors must not rotate, calls = %v", calls)
			}
		})
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New() should fail without keys")
	}
}

func TestTranscriptSchema(t *testing.T) {
	s := TranscriptSchema()
	if s.Type != genai.TypeArray || s.Items == nil || s.Items.Type != genai.TypeObject {
		t.Fatalf("unexpected schema %+v", s)
	}
	for _, key := range []string{"timestamp", "subtitle"} {
		if p := s.Items.Properties[key]; p == nil || p.Type != genai.TypeString {
			t.Errorf("property %q = %+v", key, p)
		}
	}
}
