package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/reelscript/internal/config"
	"github.com/nguyentantai21042004/reelscript/internal/processor"
	"github.com/nguyentantai21042004/reelscript/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input folder for link files and write transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log := ctx.log()
			runCtx := cmd.Context()

			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			gen, err := ctx.newGenerator()
			if err != nil {
				return err
			}
			proc := processor.New(cfg, gen, log)

			w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			log.Info(runCtx, "Watching %s for link files (.txt, .url)", cfg.Paths.Input)
			log.Info(runCtx, "Output: %s, archived: %s", cfg.Paths.Output, cfg.Paths.Archived)
			log.Info(runCtx, "Press Ctrl+C to stop")

			if err := w.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("watcher: %w", err)
			}
			log.Info(context.Background(), "Watcher stopped")
			return nil
		},
	}
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
