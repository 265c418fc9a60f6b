// Package cst provides the lossless Markdown concrete syntax tree.
// Every node carries an absolute byte span into the source it was parsed
// from, plus enough marker metadata (fence characters, list markers,
// blank-line counts) that serialization reproduces the source exactly.
package cst

// NodeKind classifies the type of a CST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	KindDocument NodeKind = iota

	// Block-level nodes.
	KindParagraph
	KindHeading
	KindFencedCode
	KindIndentedCode
	KindThematicBreak
	KindBlockQuote
	KindList
	KindListItem
	KindHTMLBlock
	KindLinkRefDef
	KindTable
	KindTableRow
	KindTableCell
	KindFootnoteDef
	KindBlankLines

	// Inline-level nodes.
	KindText
	KindSoftBreak
	KindHardBreak
	KindCodeSpan
	KindEmphasis
	KindStrong
	KindStrikethrough
	KindLink
	KindImage
	KindRefLink
	KindRefImage
	KindAutolink
	KindHTMLInline
	KindFootnoteRef
)

// Node is a single node in the CST. Children form a singly linked list;
// the tree is a strict owned forest with no parent or back pointers, so
// subtrees can be shared structurally between document versions.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Span is the absolute byte range this node covers in the source.
	Span Span

	// Child list.
	FirstChild *Node
	LastChild  *Node

	// Next sibling in the parent's child list.
	Next *Node

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// NewNode creates a node of the given kind covering span.
func NewNode(kind NodeKind, span Span) *Node {
	return &Node{Kind: kind, Span: span}
}

// AppendChild adds child at the end of n's child list.
func (n *Node) AppendChild(child *Node) {
	if n.FirstChild == nil {
		n.FirstChild = child
		n.LastChild = child
		return
	}
	n.LastChild.Next = child
	n.LastChild = child
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case KindDocument, KindParagraph, KindHeading, KindFencedCode,
		KindIndentedCode, KindThematicBreak, KindBlockQuote, KindList,
		KindListItem, KindHTMLBlock, KindLinkRefDef, KindTable,
		KindTableRow, KindTableCell, KindFootnoteDef, KindBlankLines:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return !n.IsBlock()
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Text returns the source bytes this node covers. For Text nodes whose
// literal content differs from the covered bytes (backslash escapes,
// container-stripped lines), the stored literal wins.
func (n *Node) Text(src []byte) []byte {
	if n.Inline != nil && n.Inline.Literal != nil {
		return n.Inline.Literal
	}
	if n.Span.Start < 0 || n.Span.End > len(src) || n.Span.Start > n.Span.End {
		return nil
	}
	return src[n.Span.Start:n.Span.End]
}

// CloneShifted returns a deep copy of the subtree with every span moved by
// delta. Attribute structs are shared (they are immutable after parsing),
// except for code attributes, whose body span is position-dependent.
func (n *Node) CloneShifted(delta int) *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Kind:   n.Kind,
		Span:   n.Span.Shifted(delta),
		Block:  n.Block,
		Inline: n.Inline,
	}
	if delta != 0 && n.Block != nil && n.Block.Code != nil {
		attrs := *n.Block
		code := *attrs.Code
		code.Body = code.Body.Shifted(delta)
		attrs.Code = &code
		clone.Block = &attrs
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		clone.AppendChild(child.CloneShifted(delta))
	}
	return clone
}

// Document is the root of a parsed source: the root node plus an owned copy
// of the bytes it was parsed from. The source backs span lookups and the
// lossless serializer for the lifetime of the tree.
type Document struct {
	// Root is the KindDocument node; its span covers [0, len(Source)).
	Root *Node

	// Source is the owned copy of the parsed bytes.
	Source []byte
}

// Blocks returns the document's top-level block nodes.
func (d *Document) Blocks() []*Node {
	return d.Root.Children()
}

// Len returns the source length in bytes.
func (d *Document) Len() int { return len(d.Source) }
