package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/searchexpr/internal/presentation/graph"
	"github.com/aretw0/searchexpr/internal/presentation/tui"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <view> <expressions>",
		Short: "Resolve search expressions to client ids",
		Long: `Resolves a series of search expressions against a view.
The view is either an id known to --dir or a path to a JSON/YAML view document.`,
		Example: `  searchexpr resolve --dir views login "@form:name @none"
  searchexpr resolve page.yaml "@parent" --source login:submit --components`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			view, err := env.LoadView(args[0])
			if err != nil {
				return err
			}
			ctx, err := searchContext(cmd, env, view)
			if err != nil {
				return err
			}

			components, _ := cmd.Flags().GetBool("components")
			asGraph, _ := cmd.Flags().GetBool("graph")

			var ids []string
			if components {
				err = env.Handler.ResolveComponents(ctx, args[1], func(_ *domain.SearchContext, c *domain.Component) {
					ids = append(ids, c.ClientID(view.Separator))
				})
			} else {
				ids, err = env.Handler.ResolveClientIDs(ctx, args[1])
			}

			out := cmd.OutOrStdout()
			if asGraph {
				overlay := &graph.Overlay{Matches: ids}
				if ctx.Source != nil {
					overlay.Source = ctx.Source.ClientID(view.Separator)
				}
				fmt.Fprint(out, graph.GenerateMermaid(view, overlay))
			} else {
				color := tui.IsTerminal()
				for _, id := range ids {
					if color {
						id = tui.Highlight(id)
					}
					fmt.Fprintln(out, id)
				}
			}
			if err != nil {
				return errors.Join(errors.New("resolution failed"), err)
			}
			return nil
		},
	}
	addSearchFlags(cmd)
	cmd.Flags().Bool("components", false, "Report visited components instead of client ids (passthrough keywords yield nothing)")
	cmd.Flags().Bool("graph", false, "Print a Mermaid diagram highlighting the matches")
	return cmd
}
