package htmlrender

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtree/pkg/cst"
)

// inlines renders a block's inline children.
//
//nolint:cyclop // closed dispatch over every inline kind
func (st *renderState) inlines(parent *cst.Node) {
	for n := parent.FirstChild; n != nil; n = n.Next {
		switch n.Kind {
		case cst.KindText:
			st.out.WriteString(escapeHTML(string(n.Text(st.src))))

		case cst.KindSoftBreak:
			st.out.WriteString("\n")

		case cst.KindHardBreak:
			st.out.WriteString("<br />\n")

		case cst.KindCodeSpan:
			st.out.WriteString("<code>")
			st.out.WriteString(escapeHTML(string(n.Inline.Literal)))
			st.out.WriteString("</code>")

		case cst.KindEmphasis:
			st.wrap(n, "em")

		case cst.KindStrong:
			st.wrap(n, "strong")

		case cst.KindStrikethrough:
			st.wrap(n, "del")

		case cst.KindLink:
			st.anchor(n, n.Inline.Link.Destination, n.Inline.Link.Title)

		case cst.KindImage:
			st.image(n, n.Inline.Link.Destination, n.Inline.Link.Title)

		case cst.KindRefLink:
			if def, ok := st.refs[cst.NormalizeLabel(n.Inline.Link.Label)]; ok {
				st.anchor(n, def.dest, def.title)
			} else {
				// Unresolved reference: the covered source is literal text.
				st.out.WriteString(escapeHTML(string(st.src[n.Span.Start:n.Span.End])))
			}

		case cst.KindRefImage:
			if def, ok := st.refs[cst.NormalizeLabel(n.Inline.Link.Label)]; ok {
				st.image(n, def.dest, def.title)
			} else {
				st.out.WriteString(escapeHTML(string(st.src[n.Span.Start:n.Span.End])))
			}

		case cst.KindAutolink:
			auto := n.Inline.Autolink
			href := auto.URL
			if auto.Email {
				href = "mailto:" + href
			}
			fmt.Fprintf(&st.out, "<a href=\"%s\">%s</a>", escapeAttr(href), escapeHTML(auto.URL))

		case cst.KindHTMLInline:
			st.out.Write(n.Text(st.src))

		case cst.KindFootnoteRef:
			label := cst.NormalizeLabel(n.Inline.FootnoteLabel)
			if num, ok := st.footnoteOrder[label]; ok {
				fmt.Fprintf(&st.out, "<sup><a href=\"#fn-%s\">%d</a></sup>", escapeAttr(label), num)
			} else {
				st.out.WriteString(escapeHTML(string(st.src[n.Span.Start:n.Span.End])))
			}
		}
	}
}

func (st *renderState) wrap(n *cst.Node, tag string) {
	fmt.Fprintf(&st.out, "<%s>", tag)
	st.inlines(n)
	fmt.Fprintf(&st.out, "</%s>", tag)
}

func (st *renderState) anchor(n *cst.Node, dest, title string) {
	fmt.Fprintf(&st.out, "<a href=\"%s\"", escapeAttr(dest))
	if title != "" {
		fmt.Fprintf(&st.out, " title=\"%s\"", escapeAttr(title))
	}
	st.out.WriteString(">")
	st.inlines(n)
	st.out.WriteString("</a>")
}

func (st *renderState) image(n *cst.Node, dest, title string) {
	fmt.Fprintf(&st.out, "<img src=\"%s\" alt=\"%s\"", escapeAttr(dest), escapeAttr(plainText(n, st.src)))
	if title != "" {
		fmt.Fprintf(&st.out, " title=\"%s\"", escapeAttr(title))
	}
	st.out.WriteString(" />")
}

// plainText flattens a subtree to its text content, for image alt
// attributes.
func plainText(parent *cst.Node, src []byte) string {
	var b strings.Builder
	for n := parent.FirstChild; n != nil; n = n.Next {
		switch n.Kind {
		case cst.KindText, cst.KindCodeSpan:
			b.Write(n.Text(src))
		case cst.KindSoftBreak, cst.KindHardBreak:
			b.WriteString("\n")
		case cst.KindAutolink:
			b.WriteString(n.Inline.Autolink.URL)
		default:
			b.WriteString(plainText(n, src))
		}
	}
	return b.String()
}

// escapeHTML escapes the characters that must never appear raw in HTML
// text content: & < > and the double quote.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// escapeAttr escapes a value for a double-quoted HTML attribute.
func escapeAttr(s string) string {
	return htmlEscaper.Replace(s)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)
