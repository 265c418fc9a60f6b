package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/mdtree/pkg/cst"
)

// TreePrinter renders a CST outline for the `mdtree ast --tree` view.
type TreePrinter struct {
	styles *Styles
	width  int
}

// NewTreePrinter builds a printer for the given writer, probing the
// terminal width for snippet truncation.
func NewTreePrinter(styles *Styles, writer io.Writer) *TreePrinter {
	width := 100
	if f, ok := writer.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 20 {
			width = w
		}
	}
	return &TreePrinter{styles: styles, width: width}
}

// Print writes the document outline.
func (tp *TreePrinter) Print(w io.Writer, docRoot *cst.Node, src []byte) {
	tp.node(w, docRoot, src, 0)
}

func (tp *TreePrinter) node(w io.Writer, n *cst.Node, src []byte, depth int) {
	indent := strings.Repeat("  ", depth)

	label := strings.TrimPrefix(n.Kind.String(), "Kind")
	span := fmt.Sprintf("[%d,%d)", n.Span.Start, n.Span.End)

	line := indent + tp.styles.Branch.Render("- ") +
		tp.styles.NodeKind.Render(label) + " " +
		tp.styles.NodeSpan.Render(span)
	if meta := nodeMeta(n); meta != "" {
		line += " " + tp.styles.NodeMeta.Render(meta)
	}
	if n.FirstChild == nil && n.Kind == cst.KindText {
		line += " " + tp.styles.Dim.Render(tp.snippet(string(n.Text(src)), depth))
	}
	fmt.Fprintln(w, line)

	for child := n.FirstChild; child != nil; child = child.Next {
		tp.node(w, child, src, depth+1)
	}
}

// snippet truncates literal text to the remaining terminal width.
func (tp *TreePrinter) snippet(s string, depth int) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	budget := tp.width - depth*2 - 30
	if budget < 10 {
		budget = 10
	}
	if len(s) > budget {
		s = s[:budget-1] + "…"
	}
	return fmt.Sprintf("%q", s)
}

// nodeMeta summarizes the attributes worth showing in the outline.
func nodeMeta(n *cst.Node) string {
	switch n.Kind {
	case cst.KindHeading:
		return fmt.Sprintf("level=%d", n.Block.Heading.Level)
	case cst.KindFencedCode:
		return fmt.Sprintf("info=%q", n.Block.Code.Info)
	case cst.KindList:
		if n.Block.List.Ordered {
			return fmt.Sprintf("ordered start=%d tight=%t", n.Block.List.Start, n.Block.List.Tight)
		}
		return fmt.Sprintf("marker=%q tight=%t", string(n.Block.List.Marker), n.Block.List.Tight)
	case cst.KindBlankLines:
		return fmt.Sprintf("count=%d", n.Block.BlankCount)
	case cst.KindLinkRefDef:
		return fmt.Sprintf("label=%q", n.Block.LinkRef.Label)
	case cst.KindRefLink, cst.KindRefImage:
		return fmt.Sprintf("label=%q", n.Inline.Link.Label)
	case cst.KindAutolink:
		return n.Inline.Autolink.URL
	default:
		return ""
	}
}
