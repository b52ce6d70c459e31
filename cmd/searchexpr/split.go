package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split <expressions>",
		Short: "Split an expression series into single expressions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			for _, expr := range env.Handler.SplitExpressions(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), expr)
			}
			return nil
		},
	}
}
