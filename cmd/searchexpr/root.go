package main

import (
	"fmt"
	"os"

	"github.com/aretw0/searchexpr/internal/cli"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "searchexpr",
		Short: "searchexpr resolves component search expressions against view trees",
		Long: `searchexpr resolves search expressions such as "@form:name @parent" against
component trees described in Markdown, JSON or YAML view documents.`,
		SilenceUsage: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("dir", "", "Directory containing the view documents")
	root.PersistentFlags().String("config", "", "Path to the config file (default .searchexpr.yaml)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newResolveCmd(),
		newValidateCmd(),
		newSplitCmd(),
		newKeywordsCmd(),
		newGraphCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command) (*cli.Env, error) {
	dir, _ := cmd.Flags().GetString("dir")
	cfgPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")

	opts := cli.Options{
		ConfigPath: cfgPath,
		ViewsDir:   dir,
		LogLevel:   level,
		LogWriter:  cmd.ErrOrStderr(),
	}
	if f := cmd.Flags().Lookup("metrics"); f != nil {
		opts.Metrics, _ = cmd.Flags().GetBool("metrics")
	}
	return cli.Setup(opts)
}

// addSearchFlags registers the flags shared by commands that resolve expressions.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("source", "s", "", "Client id of the component the search starts from (default: root)")
	cmd.Flags().StringSlice("hint", nil, "Resolution hints: ignore_no_result, resolve_single_component, skip_unrendered")
}

func searchHints(cmd *cobra.Command) ([]domain.Hint, error) {
	names, _ := cmd.Flags().GetStringSlice("hint")
	hints := make([]domain.Hint, 0, len(names))
	for _, name := range names {
		h, ok := domain.ParseHint(name)
		if !ok {
			return nil, fmt.Errorf("unknown hint %q", name)
		}
		hints = append(hints, h)
	}
	return hints, nil
}

func searchContext(cmd *cobra.Command, env *cli.Env, view *domain.View) (*domain.SearchContext, error) {
	hints, err := searchHints(cmd)
	if err != nil {
		return nil, err
	}
	source, _ := cmd.Flags().GetString("source")
	return env.SearchContext(view, source, hints...)
}
