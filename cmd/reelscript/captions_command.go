package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/nguyentantai21042004/reelscript/internal/generator"
	"github.com/nguyentantai21042004/reelscript/internal/srt"
	"github.com/nguyentantai21042004/reelscript/internal/transcript"
	"github.com/spf13/cobra"
)

func newCaptionsCommand(ctx *commandContext) *cobra.Command {
	var transcriptFlag string
	var styleFlag string
	var languageFlag string
	var countFlag int
	var copyFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "captions",
		Short: "Generate Instagram caption variations from a transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readTranscript(cmd.InOrStdin(), transcriptFlag)
			if err != nil {
				return err
			}

			gen, err := ctx.newGenerator()
			if err != nil {
				return err
			}
			captions, err := gen.Captions(cmd.Context(), generator.CaptionRequest{
				Entries:  entries,
				Style:    styleFlag,
				Language: languageFlag,
				Count:    countFlag,
			})
			if err != nil {
				return err
			}

			if copyFlag && len(captions) > 0 {
				if err := clipboard.WriteAll(captions[0]); err != nil {
					ctx.log().Warn(cmd.Context(), "Could not copy caption to clipboard: %v", err)
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), "Copied caption 1 to the clipboard")
				}
			}

			if jsonFlag {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string][]string{"captions": captions})
			}
			fmt.Fprintln(cmd.OutOrStdout(), captionsTable(captions))
			return nil
		},
	}

	cmd.Flags().StringVarP(&transcriptFlag, "transcript", "t", "", "Transcript file (.json or .srt, - for stdin)")
	cmd.Flags().StringVarP(&styleFlag, "style", "s", "", "Caption tone, e.g. funny or professional")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Caption language: English or Cantonese")
	cmd.Flags().IntVarP(&countFlag, "count", "n", 0, "Number of captions (1-5)")
	cmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy the first caption to the clipboard")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print captions as JSON")
	_ = cmd.MarkFlagRequired("transcript")
	_ = cmd.MarkFlagRequired("style")
	return cmd
}

// readTranscript loads a transcript from a JSON array, a {"transcript": [...]}
// response body or an SRT file.
func readTranscript(stdin io.Reader, path string) ([]transcript.Entry, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var entries []transcript.Entry
		if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return nil, fmt.Errorf("parse transcript: %w", err)
		}
		return entries, nil
	case strings.HasPrefix(trimmed, "{"):
		var body struct {
			Transcript []transcript.Entry `json:"transcript"`
		}
		if err := json.Unmarshal([]byte(trimmed), &body); err != nil {
			return nil, fmt.Errorf("parse transcript: %w", err)
		}
		return body.Transcript, nil
	case trimmed == "":
		return nil, errors.New("transcript file is empty")
	default:
		doc, err := srt.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse transcript: %w", err)
		}
		return doc.Entries(), nil
	}
}

func reportSkipped(w io.Writer, skipped []srt.Skipped) {
	for _, s := range skipped {
		fmt.Fprintf(w, "skipped entry %d (%q): %s\n", s.Position, s.Timestamp, s.Reason)
	}
}
