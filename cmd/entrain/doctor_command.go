package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"entrain/internal/preflight"
)

func newDoctorCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment for everything the watcher needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.Run(cfg)
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				mark := "ok"
				if !r.Passed {
					mark = "FAIL"
				}
				rows = append(rows, []string{mark, r.Name, r.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"", "Check", "Detail"}, rows))

			if !preflight.Passed(results) {
				return errors.New("some checks failed")
			}
			return nil
		},
	}
	return cmd
}
