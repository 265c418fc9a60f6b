// Package htmlrender folds a CST into HTML. Rendering is a pure tree fold
// into a string builder: no parser state survives into it, and the only
// extension point is the fenced-code hook.
package htmlrender

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/cst"
)

// CodeHook can take over rendering of a fenced code block. It receives the
// info string and the raw code body and returns the HTML to emit; returning
// false falls back to default escaping.
type CodeHook func(info, code string) (string, bool)

// Renderer renders documents to HTML.
type Renderer struct {
	// Code, when non-nil, is consulted for every fenced code block.
	Code CodeHook
}

// Render folds the document into HTML using the default renderer.
func Render(doc *cst.Document) string {
	return (&Renderer{}).Render(doc)
}

// Render folds the document into HTML.
func (r *Renderer) Render(doc *cst.Document) string {
	st := &renderState{
		r:    r,
		src:  doc.Source,
		refs: collectRefs(doc.Root),
	}
	st.collectFootnotes(doc.Root)

	for block := doc.Root.FirstChild; block != nil; block = block.Next {
		st.block(block, false)
	}
	st.footnoteSection()
	return st.out.String()
}

// refDef is one resolved link reference definition.
type refDef struct {
	dest  string
	title string
}

// collectRefs gathers link reference definitions by normalized label.
// The first definition of a label wins.
func collectRefs(root *cst.Node) map[string]refDef {
	refs := make(map[string]refDef)
	for _, n := range cst.FindByKind(root, cst.KindLinkRefDef) {
		label := cst.NormalizeLabel(n.Block.LinkRef.Label)
		if _, ok := refs[label]; !ok {
			refs[label] = refDef{
				dest:  n.Block.LinkRef.Destination,
				title: n.Block.LinkRef.Title,
			}
		}
	}
	return refs
}

type renderState struct {
	r    *Renderer
	src  []byte
	out  strings.Builder
	refs map[string]refDef

	footnotes     []*cst.Node
	footnoteOrder map[string]int
}

func (st *renderState) collectFootnotes(root *cst.Node) {
	st.footnoteOrder = make(map[string]int)
	for _, n := range cst.FindByKind(root, cst.KindFootnoteDef) {
		label := cst.NormalizeLabel(n.Block.FootnoteLabel)
		if _, ok := st.footnoteOrder[label]; ok {
			continue
		}
		st.footnoteOrder[label] = len(st.footnotes) + 1
		st.footnotes = append(st.footnotes, n)
	}
}

// block renders one block node. In tight list items, paragraphs render
// without their <p> wrapper.
//
//nolint:cyclop // closed dispatch over every block kind
func (st *renderState) block(n *cst.Node, tight bool) {
	switch n.Kind {
	case cst.KindParagraph:
		if tight {
			st.inlines(n)
			return
		}
		st.out.WriteString("<p>")
		st.inlines(n)
		st.out.WriteString("</p>\n")

	case cst.KindHeading:
		level := n.Block.Heading.Level
		fmt.Fprintf(&st.out, "<h%d>", level)
		st.inlines(n)
		fmt.Fprintf(&st.out, "</h%d>\n", level)

	case cst.KindFencedCode:
		st.fencedCode(n)

	case cst.KindIndentedCode:
		st.out.WriteString("<pre><code>")
		st.out.WriteString(escapeHTML(string(n.Block.Code.Literal)))
		st.out.WriteString("</code></pre>\n")

	case cst.KindThematicBreak:
		st.out.WriteString("<hr />\n")

	case cst.KindBlockQuote:
		st.out.WriteString("<blockquote>\n")
		for child := n.FirstChild; child != nil; child = child.Next {
			st.block(child, false)
		}
		st.out.WriteString("</blockquote>\n")

	case cst.KindList:
		st.list(n)

	case cst.KindHTMLBlock:
		st.out.Write(st.src[n.Span.Start:n.Span.End])

	case cst.KindTable:
		st.table(n)

	case cst.KindLinkRefDef, cst.KindFootnoteDef, cst.KindBlankLines:
		// Nothing to emit: definitions resolve by label and blank runs
		// are spacing metadata.
	}
}

func (st *renderState) fencedCode(n *cst.Node) {
	attrs := n.Block.Code
	if st.r.Code != nil {
		if html, ok := st.r.Code(attrs.Info, string(attrs.Literal)); ok {
			st.out.WriteString(html)
			return
		}
	}
	st.out.WriteString("<pre><code")
	if attrs.Info != "" {
		lang := attrs.Info
		if sp := strings.IndexAny(lang, " \t"); sp >= 0 {
			lang = lang[:sp]
		}
		fmt.Fprintf(&st.out, " class=\"language-%s\"", escapeHTML(lang))
	}
	st.out.WriteString(">")
	st.out.WriteString(escapeHTML(string(attrs.Literal)))
	st.out.WriteString("</code></pre>\n")
}

func (st *renderState) list(n *cst.Node) {
	attrs := n.Block.List
	if attrs.Ordered {
		if attrs.Start != 1 {
			fmt.Fprintf(&st.out, "<ol start=\"%d\">\n", attrs.Start)
		} else {
			st.out.WriteString("<ol>\n")
		}
	} else {
		st.out.WriteString("<ul>\n")
	}

	for item := n.FirstChild; item != nil; item = item.Next {
		st.listItem(item, attrs.Tight)
	}

	if attrs.Ordered {
		st.out.WriteString("</ol>\n")
	} else {
		st.out.WriteString("</ul>\n")
	}
}

func (st *renderState) listItem(item *cst.Node, tight bool) {
	st.out.WriteString("<li>")
	if !tight {
		st.out.WriteString("\n")
	}

	if task := item.Block.Item.Task; task != cst.TaskNone {
		if task == cst.TaskChecked {
			st.out.WriteString(`<input checked="" disabled="" type="checkbox"> `)
		} else {
			st.out.WriteString(`<input disabled="" type="checkbox"> `)
		}
	}

	for child := item.FirstChild; child != nil; child = child.Next {
		if child.Kind == cst.KindBlankLines {
			continue
		}
		if tight && child.Kind == cst.KindParagraph {
			st.block(child, true)
			if child.Next != nil && child.Next.Kind != cst.KindBlankLines {
				st.out.WriteString("\n")
			}
			continue
		}
		if tight && child == item.FirstChild {
			st.out.WriteString("\n")
		}
		st.block(child, false)
	}

	st.out.WriteString("</li>\n")
}

func (st *renderState) table(n *cst.Node) {
	st.out.WriteString("<table>\n")
	rows := n.Children()

	st.out.WriteString("<thead>\n")
	st.tableRow(rows[0], "th")
	st.out.WriteString("</thead>\n")

	if len(rows) > 1 {
		st.out.WriteString("<tbody>\n")
		for _, row := range rows[1:] {
			st.tableRow(row, "td")
		}
		st.out.WriteString("</tbody>\n")
	}
	st.out.WriteString("</table>\n")
}

func (st *renderState) tableRow(row *cst.Node, tag string) {
	st.out.WriteString("<tr>\n")
	for cell := row.FirstChild; cell != nil; cell = cell.Next {
		align := cell.Block.Cell.Align
		if align == cst.AlignNone {
			fmt.Fprintf(&st.out, "<%s>", tag)
		} else {
			fmt.Fprintf(&st.out, "<%s align=\"%s\">", tag, align)
		}
		st.inlines(cell)
		fmt.Fprintf(&st.out, "</%s>\n", tag)
	}
	st.out.WriteString("</tr>\n")
}

func (st *renderState) footnoteSection() {
	if len(st.footnotes) == 0 {
		return
	}
	st.out.WriteString("<section class=\"footnotes\">\n<ol>\n")
	for _, def := range st.footnotes {
		label := cst.NormalizeLabel(def.Block.FootnoteLabel)
		fmt.Fprintf(&st.out, "<li id=\"fn-%s\">\n", escapeAttr(label))
		for child := def.FirstChild; child != nil; child = child.Next {
			st.block(child, false)
		}
		st.out.WriteString("</li>\n")
	}
	st.out.WriteString("</ol>\n</section>\n")
}
