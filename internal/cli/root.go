// Package cli provides the Cobra command structure for mdtree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// options carries the global flags and loaded config shared by subcommands.
type options struct {
	cfg   *config.Config
	color string
}

// NewRootCommand creates the root mdtree command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	opts := &options{cfg: config.Default(), color: "auto"}

	rootCmd := &cobra.Command{
		Use:   "mdtree",
		Short: "A lossless Markdown CST parser and renderer",
		Long: `mdtree parses CommonMark + GFM Markdown into a lossless concrete syntax
tree: every byte of the source, including whitespace and marker choices, is
preserved, so serializing an unedited tree reproduces the input exactly.

The tree can be rendered to HTML, projected to an mdast-shaped AST, or
normalized to canonical Markdown. The library behind the tool reparses
edited documents incrementally at block granularity.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultFileName
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			if cfg.LogLevel != "" {
				logging.SetLevel(cfg.LogLevel)
			}
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newASTCommand(opts))
	rootCmd.AddCommand(newFmtCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
