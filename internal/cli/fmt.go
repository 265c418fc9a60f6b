package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/pkg/fsutil"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/serialize"
)

func newFmtCommand(opts *options) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Normalize Markdown formatting",
		Long: `Parse a Markdown file (or stdin) and print it in canonical form: ATX
headings, a single blank line between blocks, and a trailing newline.
With --write the file is rewritten in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readInput(args)
			if err != nil {
				return err
			}

			normalized := serialize.Normalize(parser.Parse(src))

			if write || opts.cfg.Format.Write {
				if name == "<stdin>" {
					return fmt.Errorf("--write requires a file argument")
				}
				info, err := os.Stat(name)
				if err != nil {
					return fmt.Errorf("stat %s: %w", name, err)
				}
				_, err = fsutil.WriteAtomicIfChanged(cmd.Context(), name, normalized, info.Mode().Perm())
				return err
			}

			_, err = os.Stdout.Write(normalized)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place")
	return cmd
}
