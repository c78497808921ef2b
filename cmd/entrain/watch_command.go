package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"entrain/internal/daemon"
	"entrain/internal/playback"
)

func newWatchCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reconcile continuously and print state changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg)
			if err != nil {
				return err
			}

			session := buildSession(cfg, logger)
			interval := time.Duration(cfg.Reconcile.PollIntervalSeconds) * time.Second

			out := cmd.OutOrStdout()
			var last string
			onState := func(state playback.State) {
				line := state.PresenceString()
				if details := state.DetailsString(); details != "" {
					line += "  " + details
				}
				if line == last {
					return
				}
				last = line
				fmt.Fprintln(out, line)
			}

			d, err := daemon.New(session, cfg.Paths.LogDir, interval, logger, onState)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return d.Run(ctx)
		},
	}
	return cmd
}
