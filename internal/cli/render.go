package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/htmlrender"
	"github.com/yaklabco/mdtree/pkg/parser"
)

func newRenderCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render Markdown to HTML",
		Long: `Parse a Markdown file (or stdin) and render it to HTML on stdout.

Fenced code blocks get a language class canonicalized through the language
alias table unless render.language_hook is disabled in the config.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, name, err := readInput(args)
			if err != nil {
				return err
			}

			document := parser.Parse(src)
			logging.FromContext(cmd.Context()).Debug("parsed",
				logging.FieldInput, name,
				logging.FieldBytes, len(src),
				logging.FieldBlocks, document.Root.ChildCount(),
			)

			renderer := &htmlrender.Renderer{}
			if opts.cfg.Render.LanguageHook {
				renderer.Code = htmlrender.LanguageClassHook
			}
			_, err = os.Stdout.WriteString(renderer.Render(document))
			return err
		},
	}
	return cmd
}
