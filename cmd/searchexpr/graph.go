package main

import (
	"fmt"

	"github.com/aretw0/searchexpr/internal/presentation/graph"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <view>",
		Short: "Export the component tree as a Mermaid diagram",
		Long: `Outputs a Mermaid diagram (graph TD) of the view's component tree.
With --expression, the components it resolves to are highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			view, err := env.LoadView(args[0])
			if err != nil {
				return err
			}

			var overlay *graph.Overlay
			if expr, _ := cmd.Flags().GetString("expression"); expr != "" {
				ctx, err := searchContext(cmd, env, view)
				if err != nil {
					return err
				}
				overlay = &graph.Overlay{Source: ctx.Source.ClientID(view.Separator)}
				err = env.Handler.ResolveComponents(ctx, expr, func(_ *domain.SearchContext, c *domain.Component) {
					overlay.Matches = append(overlay.Matches, c.ClientID(view.Separator))
				})
				if err != nil {
					env.Logger.Warn("overlay is partial", "err", err)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(view, overlay))
			return nil
		},
	}
	addSearchFlags(cmd)
	cmd.Flags().StringP("expression", "e", "", "Highlight the components this expression series resolves to")
	return cmd
}
