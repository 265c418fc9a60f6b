package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/parser"
)

func newASTCommand(opts *options) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the document AST",
		Long: `Parse a Markdown file (or stdin) and print its mdast-shaped AST as JSON.

With --tree, print the full concrete syntax tree as a styled outline
instead, including the CST-only nodes (blank-line runs, marker metadata)
the JSON projection drops.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := readInput(args)
			if err != nil {
				return err
			}
			document := parser.Parse(src)

			if tree {
				styles := pretty.NewStyles(pretty.IsColorEnabled(opts.color, os.Stdout))
				printer := pretty.NewTreePrinter(styles, os.Stdout)
				printer.Print(os.Stdout, document.Root, document.Source)
				return nil
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(document.AST())
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "print the concrete syntax tree outline")
	return cmd
}
