package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/searchexpr"
	"github.com/aretw0/searchexpr/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of searchexpr",
		Run: func(cmd *cobra.Command, args []string) {
			if banner, _ := cmd.Flags().GetBool("banner"); banner {
				tui.PrintBanner(cmd.OutOrStdout(), searchexpr.Version)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "searchexpr version %s\n", strings.TrimSpace(searchexpr.Version))
		},
	}
	cmd.Flags().Bool("banner", false, "Print the banner")
	return cmd
}
