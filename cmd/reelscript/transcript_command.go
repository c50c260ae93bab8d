package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/nguyentantai21042004/reelscript/internal/export"
	"github.com/nguyentantai21042004/reelscript/internal/generator"
	"github.com/spf13/cobra"
)

const formatTable = "table"

func newTranscriptCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "transcript [youtube-url]",
		Short: "Generate a timestamped transcript for a YouTube video",
		Long:  "Generate a timestamped transcript for a YouTube video. Without an argument the link is read from the clipboard.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			link, err := linkFromArgs(args)
			if err != nil {
				return err
			}
			if err := generator.ValidateLink(link); err != nil {
				return fmt.Errorf("%q is not a valid link: %w", link, err)
			}

			format := strings.ToLower(strings.TrimSpace(formatFlag))
			var exportFormat export.Format
			if format != formatTable {
				if exportFormat, err = export.ParseFormat(format); err != nil {
					return err
				}
			}
			if exportFormat == export.FormatDOCX && outputFlag == "" {
				return errors.New("--output is required for docx")
			}

			gen, err := ctx.newGenerator()
			if err != nil {
				return err
			}
			entries, err := gen.Transcript(cmd.Context(), link)
			if err != nil {
				return err
			}

			if format == formatTable {
				return writeOutput(cmd.OutOrStdout(), outputFlag, []byte(transcriptTable(entries)+"\n"))
			}

			opts := export.Options{Title: "Transcript: " + link, SRTDuration: cfg.Transcript.SRTDuration}
			if outputFlag != "" {
				skipped, err := export.WriteFile(outputFlag, exportFormat, entries, opts)
				reportSkipped(cmd.ErrOrStderr(), skipped)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outputFlag)
				return nil
			}
			data, skipped, err := export.Render(exportFormat, entries, opts)
			reportSkipped(cmd.ErrOrStderr(), skipped)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", formatTable, "Output format: table, json, srt or docx")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func linkFromArgs(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}
	clip, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("no link given and clipboard unavailable: %w", err)
	}
	return strings.TrimSpace(clip), nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
