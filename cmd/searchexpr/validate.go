package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [view] [expressions...]",
		Short: "Validate view documents and search expressions",
		Long: `Without arguments, loads every view under --dir and reports the invalid ones.
With a view, validates it and checks that each given expression series parses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				loader := env.Handler.Loader()
				if loader == nil {
					return fmt.Errorf("nothing to validate: pass a view or --dir")
				}
				ids, err := loader.ListViews()
				if err != nil {
					return err
				}
				failed := 0
				for _, id := range ids {
					if _, err := env.LoadView(id); err != nil {
						failed++
						fmt.Fprintf(out, "✗ %s: %v\n", id, err)
						continue
					}
					fmt.Fprintf(out, "✓ %s\n", id)
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d views are invalid", failed, len(ids))
				}
				return nil
			}

			view, err := env.LoadView(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ %s\n", view.ID)

			ctx, err := env.SearchContext(view, "")
			if err != nil {
				return err
			}
			invalid := 0
			for _, series := range args[1:] {
				for _, expr := range env.Handler.SplitExpressions(series) {
					if env.Handler.IsValidExpression(ctx, expr) {
						fmt.Fprintf(out, "✓ %s\n", expr)
						continue
					}
					invalid++
					fmt.Fprintf(out, "✗ %s\n", expr)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d invalid expressions", invalid)
			}
			return nil
		},
	}
}
