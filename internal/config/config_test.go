package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{Gemini: GeminiConfig{APIKeys: []string{"k1"}}},
			wantErr: false,
		},
		{
			name:    "missing api key",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "unknown timestamp format",
			config: Config{
				Gemini:     GeminiConfig{APIKeys: []string{"k1"}},
				Transcript: TranscriptConfig{TimestampFormat: "frames"},
			},
			wantErr: true,
		},
		{
			name: "negative srt duration",
			config: Config{
				Gemini:     GeminiConfig{APIKeys: []string{"k1"}},
				Transcript: TranscriptConfig{SRTDuration: -1},
			},
			wantErr: true,
		},
		{
			name: "unsupported caption language",
			config: Config{
				Gemini:   GeminiConfig{APIKeys: []string{"k1"}},
				Captions: CaptionsConfig{DefaultLanguage: "French"},
			},
			wantErr: true,
		},
		{
			name: "caption count out of range",
			config: Config{
				Gemini:   GeminiConfig{APIKeys: []string{"k1"}},
				Captions: CaptionsConfig{DefaultCount: 9},
			},
			wantErr: true,
		},
		{
			name: "temperature out of range",
			config: Config{
				Gemini: GeminiConfig{APIKeys: []string{"k1"}, CaptionTemperature: float32Ptr(3)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Gemini: GeminiConfig{APIKeys: []string{"k1"}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:5000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Gemini.Timeout != 120*time.Second {
		t.Errorf("Timeout = %v", cfg.Gemini.Timeout)
	}
	if *cfg.Gemini.TranscriptTemperature != 1.0 || *cfg.Gemini.CaptionTemperature != 0.9 {
		t.Errorf("temperatures = %v, %v", *cfg.Gemini.TranscriptTemperature, *cfg.Gemini.CaptionTemperature)
	}
	if cfg.Transcript.TimestampFormat != "hms_millis" {
		t.Errorf("TimestampFormat = %q", cfg.Transcript.TimestampFormat)
	}
	if cfg.Transcript.SRTDuration != 5.0 {
		t.Errorf("SRTDuration = %v", cfg.Transcript.SRTDuration)
	}
	if cfg.Captions.DefaultLanguage != "Cantonese" || cfg.Captions.DefaultCount != 3 {
		t.Errorf("captions = %+v", cfg.Captions)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d", cfg.Performance.MaxConcurrent)
	}
}

func TestValidateCanonicalizesLanguage(t *testing.T) {
	cfg := Config{
		Gemini:   GeminiConfig{APIKeys: []string{"k1"}},
		Captions: CaptionsConfig{DefaultLanguage: "english"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Captions.DefaultLanguage != "English" {
		t.Errorf("DefaultLanguage = %q, want English", cfg.Captions.DefaultLanguage)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvAPIKey, " key-a, key-b ,,")
	t.Setenv(EnvPort, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: "127.0.0.1:8080"

gemini:
  model: "gemini-2.5-pro"
  timeout: 30s

transcript:
  timestamp_format: "ms_millis"
  srt_duration: 3.5

paths:
  input: "links"
  output: "out"

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff([]string{"key-a", "key-b"}, cfg.Gemini.APIKeys); diff != "" {
		t.Errorf("APIKeys mismatch (-want +got):\n%s", diff)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" || cfg.Gemini.Timeout != 30*time.Second {
		t.Errorf("gemini = %+v", cfg.Gemini)
	}
	if cfg.TimestampFormat() != "ms_millis" {
		t.Errorf("TimestampFormat() = %q", cfg.TimestampFormat())
	}
	if cfg.Transcript.SRTDuration != 3.5 {
		t.Errorf("SRTDuration = %v", cfg.Transcript.SRTDuration)
	}
	if cfg.Paths.Input != "links" || cfg.Paths.Archived != "data/archived" {
		t.Errorf("paths = %+v", cfg.Paths)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "only")
	t.Setenv(EnvPort, "7000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:7000" {
		t.Errorf("Addr = %q, want 0.0.0.0:7000", cfg.Server.Addr)
	}
}

func TestLoadMissingKey(t *testing.T) {
	t.Setenv(EnvAPIKey, " , ")
	if _, err := Load(""); err == nil {
		t.Error("Load() should fail without an API key")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "k")
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestApplyEnvPortKeepsHost(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Addr: "127.0.0.1:5000"}}
	env := map[string]string{EnvPort: "9999"}
	applyEnv(cfg, func(k string) string { return env[k] })

	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %q, want 127.0.0.1:9999", cfg.Server.Addr)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("REELSCRIPT_TEST_VAR=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REELSCRIPT_TEST_VAR", "")
	os.Unsetenv("REELSCRIPT_TEST_VAR")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("REELSCRIPT_TEST_VAR"); got != "from-file" {
		t.Errorf("REELSCRIPT_TEST_VAR = %q, want from-file", got)
	}
}
