package main

import (
	"fmt"

	"github.com/aretw0/searchexpr/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newKeywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "List the registered search keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			render := tui.NewRenderer()
			out, err := render(tui.KeywordsMarkdown(env.Handler.Keywords()))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
