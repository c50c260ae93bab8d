package main

import (
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/reelscript/internal/config"
	"github.com/nguyentantai21042004/reelscript/internal/gemini"
	"github.com/nguyentantai21042004/reelscript/internal/generator"
	"github.com/nguyentantai21042004/reelscript/internal/logger"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	envFileFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     logger.Logger
}

func newCommandContext(configFlag, logLevelFlag, envFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		envFileFlag:  envFileFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if c.envFileFlag != nil && strings.TrimSpace(*c.envFileFlag) != "" {
			if err := config.LoadDotEnv(strings.TrimSpace(*c.envFileFlag)); err != nil {
				c.configErr = err
				return
			}
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// log writes to stderr so command output on stdout stays clean.
func (c *commandContext) log() logger.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logger.NewWithWriter(os.Stderr, "info", "auto")
			return
		}
		c.logger = logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	})
	return c.logger
}

func (c *commandContext) newGenerator() (generator.Generator, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	client, err := gemini.New(gemini.Options{
		APIKeys: cfg.Gemini.APIKeys,
		Model:   cfg.Gemini.Model,
		Timeout: cfg.Gemini.Timeout,
		Logger:  c.log(),
	})
	if err != nil {
		return nil, err
	}
	return generator.New(generator.Options{
		Client:                client,
		Logger:                c.log(),
		Format:                cfg.TimestampFormat(),
		MediaMIMEType:         cfg.Transcript.MediaMIMEType,
		TranscriptTemperature: cfg.Gemini.TranscriptTemperature,
		CaptionTemperature:    cfg.Gemini.CaptionTemperature,
		DefaultLanguage:       cfg.Captions.DefaultLanguage,
		DefaultCount:          cfg.Captions.DefaultCount,
	}), nil
}
