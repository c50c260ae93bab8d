package main

import (
	"time"

	"github.com/nguyentantai21042004/reelscript/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addrFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			gen, err := ctx.newGenerator()
			if err != nil {
				return err
			}
			log := ctx.log()

			addr := cfg.Server.Addr
			if addrFlag != "" {
				addr = addrFlag
			}

			srv := httpapi.New(httpapi.Options{
				Addr:            addr,
				Generator:       gen,
				Logger:          log,
				SRTDuration:     cfg.Transcript.SRTDuration,
				WriteTimeout:    cfg.Gemini.Timeout + 30*time.Second,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			})

			runCtx := cmd.Context()
			if err := srv.Start(runCtx); err != nil {
				return err
			}
			log.Info(runCtx, "Model %s, timeout %s, timestamps %s", cfg.Gemini.Model, cfg.Gemini.Timeout, cfg.Transcript.TimestampFormat)

			<-runCtx.Done()
			log.Info(runCtx, "Shutting down gracefully...")
			srv.Stop()
			return nil
		},
	}

	cmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (overrides server.addr and PORT)")
	return cmd
}
