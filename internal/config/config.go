package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/reelscript/internal/caption"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
)

// EnvAPIKey holds one Gemini API key, or several separated by commas.
const EnvAPIKey = "GEMINI_API_KEY"

// EnvPort overrides the port of server.addr.
const EnvPort = "PORT"

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Transcript  TranscriptConfig  `yaml:"transcript"`
	Captions    CaptionsConfig    `yaml:"captions"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type GeminiConfig struct {
	Model                 string        `yaml:"model"`
	Timeout               time.Duration `yaml:"timeout"`
	TranscriptTemperature *float32      `yaml:"transcript_temperature"`
	CaptionTemperature    *float32      `yaml:"caption_temperature"`

	// APIKeys is read from the environment only.
	APIKeys []string `yaml:"-"`
}

type TranscriptConfig struct {
	TimestampFormat string  `yaml:"timestamp_format"`
	SRTDuration     float64 `yaml:"srt_duration"`
	MediaMIMEType   string  `yaml:"media_mime_type"`
}

type CaptionsConfig struct {
	DefaultLanguage string `yaml:"default_language"`
	DefaultCount    int    `yaml:"default_count"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Validate rejects unusable values and fills defaults for the rest.
func (c *Config) Validate() error {
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini api key is required (set %s)", EnvAPIKey)
	}
	if c.Gemini.Timeout < 0 {
		return fmt.Errorf("gemini.timeout must not be negative")
	}
	if t := c.Gemini.TranscriptTemperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("gemini.transcript_temperature must be between 0 and 2")
	}
	if t := c.Gemini.CaptionTemperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("gemini.caption_temperature must be between 0 and 2")
	}
	if c.Transcript.SRTDuration < 0 {
		return fmt.Errorf("transcript.srt_duration must not be negative")
	}
	if _, err := transcript.ParseTimestampFormat(c.Transcript.TimestampFormat); err != nil {
		return fmt.Errorf("transcript.timestamp_format: %w", err)
	}
	if c.Captions.DefaultLanguage != "" {
		lang, ok := caption.CanonicalLanguage(c.Captions.DefaultLanguage)
		if !ok {
			return fmt.Errorf("captions.default_language must be English or Cantonese")
		}
		c.Captions.DefaultLanguage = lang
	}
	if c.Captions.DefaultCount != 0 && !caption.ValidCount(c.Captions.DefaultCount) {
		return fmt.Errorf("captions.default_count must be between %d and %d", caption.MinCount, caption.MaxCount)
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = "0.0.0.0:5000"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Timeout == 0 {
		c.Gemini.Timeout = 120 * time.Second
	}
	if c.Gemini.TranscriptTemperature == nil {
		c.Gemini.TranscriptTemperature = float32Ptr(1.0)
	}
	if c.Gemini.CaptionTemperature == nil {
		c.Gemini.CaptionTemperature = float32Ptr(0.9)
	}
	if c.Transcript.TimestampFormat == "" {
		c.Transcript.TimestampFormat = string(transcript.FormatHMSMillis)
	}
	c.Transcript.TimestampFormat = strings.ToLower(strings.TrimSpace(c.Transcript.TimestampFormat))
	if c.Transcript.SRTDuration == 0 {
		c.Transcript.SRTDuration = 5.0
	}
	if c.Transcript.MediaMIMEType == "" {
		c.Transcript.MediaMIMEType = "video/mp4"
	}
	if c.Captions.DefaultLanguage == "" {
		c.Captions.DefaultLanguage = caption.DefaultLanguage
	}
	if c.Captions.DefaultCount == 0 {
		c.Captions.DefaultCount = caption.DefaultCount
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

// TimestampFormat returns the validated transcript timestamp format.
func (c *Config) TimestampFormat() transcript.TimestampFormat {
	f, err := transcript.ParseTimestampFormat(c.Transcript.TimestampFormat)
	if err != nil {
		return transcript.FormatHMSMillis
	}
	return f
}

func float32Ptr(v float32) *float32 {
	return &v
}
