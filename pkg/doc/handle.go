// Package doc provides the document handle editor embeddings hold: source
// text, parsed tree, and a lazily cached HTML rendering, updated
// incrementally per edit.
package doc

import (
	"github.com/yaklabco/mdtree/pkg/cst"
	"github.com/yaklabco/mdtree/pkg/htmlrender"
	"github.com/yaklabco/mdtree/pkg/incremental"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/serialize"
)

// Handle carries a source, its document, and a cached HTML rendering.
// Update does not modify the handle: it returns a new handle and leaves the
// old one valid, sharing unchanged subtrees between the two. WithRenderer and
// Close modify the handle in place.
type Handle struct {
	source   []byte
	document *cst.Document

	renderer *htmlrender.Renderer
	html     string
	rendered bool
}

// New parses source and returns a handle for it.
func New(source []byte) *Handle {
	document := parser.Parse(source)
	return &Handle{source: document.Source, document: document}
}

// WithRenderer sets the renderer used by ToHTML and returns the handle.
// The zero renderer is used by default.
func (h *Handle) WithRenderer(r *htmlrender.Renderer) *Handle {
	h.renderer = r
	h.html = ""
	h.rendered = false
	return h
}

// Document returns the underlying CST document.
func (h *Handle) Document() *cst.Document { return h.document }

// Source returns the handle's source bytes. Callers must not mutate them.
func (h *Handle) Source() []byte { return h.source }

// AST returns the external mdast-shaped projection of the tree.
func (h *Handle) AST() *cst.ASTNode { return h.document.AST() }

// ToHTML renders the document, caching the result on the handle until
// WithRenderer or Close clears it.
func (h *Handle) ToHTML() string {
	if !h.rendered {
		r := h.renderer
		if r == nil {
			r = &htmlrender.Renderer{}
		}
		h.html = r.Render(h.document)
		h.rendered = true
	}
	return h.html
}

// ToMarkdown serializes the document losslessly: for an unedited tree the
// result is byte-identical to the source.
func (h *Handle) ToMarkdown() []byte {
	return serialize.Serialize(h.document)
}

// Normalized renders the document in canonical Markdown form.
func (h *Handle) Normalized() []byte {
	return serialize.Normalize(h.document)
}

// Update applies an edit, reparsing incrementally, and returns a new
// handle. newSource must be the old source with the edit applied.
func (h *Handle) Update(newSource []byte, edit incremental.EditInfo) *Handle {
	document := incremental.Parse(h.document, h.source, newSource, edit)
	return &Handle{
		source:   document.Source,
		document: document,
		renderer: h.renderer,
	}
}

// Close releases the handle's references. Using the handle afterwards is
// invalid.
func (h *Handle) Close() {
	h.source = nil
	h.document = nil
	h.html = ""
	h.rendered = false
}
