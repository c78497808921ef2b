package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCommand(cc *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Run one reconciliation cycle and print the result",
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
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			state, err := session.Read(ctx)
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}

			if jsonOut {
				return writeJSON(cmd, state)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStatus(state))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the state as JSON")
	return cmd
}
