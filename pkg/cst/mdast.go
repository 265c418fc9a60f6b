package cst

// ASTNode is the external, mdast-shaped projection of a CST node: a
// discriminated record with a type tag, a children array, and byte-offset
// positions. CST-only bookkeeping (marker characters, fence lengths,
// blank-line runs) is dropped; spans are retained.
type ASTNode struct {
	Type     string       `json:"type"`
	Children []*ASTNode   `json:"children,omitempty"`
	Position *ASTPosition `json:"position,omitempty"`

	// Literal content (text, inlineCode, code, html).
	Value string `json:"value,omitempty"`

	// Heading depth.
	Depth int `json:"depth,omitempty"`

	// Code block language.
	Lang string `json:"lang,omitempty"`

	// List attributes.
	Ordered *bool `json:"ordered,omitempty"`
	Start   int   `json:"start,omitempty"`
	Spread  *bool `json:"spread,omitempty"`

	// Task list item state.
	Checked *bool `json:"checked,omitempty"`

	// Link / image / definition attributes.
	URL        string `json:"url,omitempty"`
	Title      string `json:"title,omitempty"`
	Alt        string `json:"alt,omitempty"`
	Identifier string `json:"identifier,omitempty"`

	// Table column alignments ("left", "center", "right", or "").
	Align []string `json:"align,omitempty"`
}

// ASTPosition carries the byte offsets of a projected node.
type ASTPosition struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// AST projects the document into the external mdast shape.
func (d *Document) AST() *ASTNode {
	return projectNode(d.Root, d.Source)
}

func projectNode(n *Node, src []byte) *ASTNode {
	out := &ASTNode{
		Type:     astType(n),
		Position: &ASTPosition{Start: n.Span.Start, End: n.Span.End},
	}

	switch n.Kind {
	case KindHeading:
		out.Depth = n.Block.Heading.Level
	case KindFencedCode:
		out.Lang = n.Block.Code.Info
		out.Value = string(n.Block.Code.Literal)
	case KindIndentedCode:
		out.Value = string(n.Block.Code.Literal)
	case KindHTMLBlock:
		out.Value = string(n.Text(src))
	case KindList:
		ordered := n.Block.List.Ordered
		spread := !n.Block.List.Tight
		out.Ordered = &ordered
		out.Spread = &spread
		if ordered {
			out.Start = n.Block.List.Start
		}
	case KindListItem:
		if n.Block.Item.Task != TaskNone {
			checked := n.Block.Item.Task == TaskChecked
			out.Checked = &checked
		}
	case KindLinkRefDef:
		out.Identifier = NormalizeLabel(n.Block.LinkRef.Label)
		out.URL = n.Block.LinkRef.Destination
		out.Title = n.Block.LinkRef.Title
	case KindTable:
		for _, a := range n.Block.Table.Alignments {
			out.Align = append(out.Align, a.String())
		}
	case KindFootnoteDef:
		out.Identifier = NormalizeLabel(n.Block.FootnoteLabel)
	case KindText:
		out.Value = string(n.Text(src))
	case KindSoftBreak:
		out.Value = "\n"
	case KindCodeSpan:
		out.Value = string(n.Text(src))
	case KindHTMLInline:
		out.Value = string(n.Text(src))
	case KindLink, KindImage:
		out.URL = n.Inline.Link.Destination
		out.Title = n.Inline.Link.Title
	case KindRefLink, KindRefImage:
		out.Identifier = NormalizeLabel(n.Inline.Link.Label)
	case KindAutolink:
		out.URL = n.Inline.Autolink.URL
	case KindFootnoteRef:
		out.Identifier = NormalizeLabel(n.Inline.FootnoteLabel)
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == KindBlankLines {
			// CST-only spacing node; not part of the external shape.
			continue
		}
		out.Children = append(out.Children, projectNode(child, src))
	}

	return out
}

func astType(n *Node) string {
	switch n.Kind {
	case KindDocument:
		return "root"
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindFencedCode, KindIndentedCode:
		return "code"
	case KindThematicBreak:
		return "thematicBreak"
	case KindBlockQuote:
		return "blockquote"
	case KindList:
		return "list"
	case KindListItem:
		return "listItem"
	case KindHTMLBlock:
		return "html"
	case KindLinkRefDef:
		return "definition"
	case KindTable:
		return "table"
	case KindTableRow:
		return "tableRow"
	case KindTableCell:
		return "tableCell"
	case KindFootnoteDef:
		return "footnoteDefinition"
	case KindBlankLines:
		return "blankLines"
	case KindText, KindSoftBreak:
		return "text"
	case KindHardBreak:
		return "break"
	case KindCodeSpan:
		return "inlineCode"
	case KindEmphasis:
		return "emphasis"
	case KindStrong:
		return "strong"
	case KindStrikethrough:
		return "delete"
	case KindLink:
		return "link"
	case KindImage:
		return "image"
	case KindRefLink:
		return "linkReference"
	case KindRefImage:
		return "imageReference"
	case KindAutolink:
		return "link"
	case KindHTMLInline:
		return "html"
	case KindFootnoteRef:
		return "footnoteReference"
	default:
		return "unknown"
	}
}
