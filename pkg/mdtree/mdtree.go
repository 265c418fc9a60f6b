// Package mdtree is the public surface of the library: a lossless Markdown
// CST with block-level incremental reparsing, a byte-identical serializer,
// and an HTML renderer.
//
// A full parse, an edit, and an incremental reparse:
//
//	doc := mdtree.Parse([]byte("# Hello"))
//	edit := mdtree.Insert(7, 6)
//	doc2 := mdtree.ParseIncremental(doc, []byte("# Hello"), []byte("# Hello World"), edit)
//
// Serialization of an unedited tree reproduces the input exactly:
// mdtree.Serialize(mdtree.Parse(src)) == src for every src.
package mdtree

import (
	"github.com/yaklabco/mdtree/pkg/cst"
	"github.com/yaklabco/mdtree/pkg/htmlrender"
	"github.com/yaklabco/mdtree/pkg/incremental"
	"github.com/yaklabco/mdtree/pkg/parser"
	"github.com/yaklabco/mdtree/pkg/serialize"
)

// EditInfo describes a text edit; see package incremental.
type EditInfo = incremental.EditInfo

// Parse builds the CST for src. Parsing never fails: any byte sequence has
// a document, and every byte is attributed to some node.
func Parse(src []byte) *cst.Document {
	return parser.Parse(src)
}

// Serialize reproduces the document's source text byte-identically.
func Serialize(doc *cst.Document) []byte {
	return serialize.Serialize(doc)
}

// Normalize renders the document in canonical Markdown form.
func Normalize(doc *cst.Document) []byte {
	return serialize.Normalize(doc)
}

// ParseIncremental reparses newSrc against the previous tree, touching only
// the blocks the edit damaged.
func ParseIncremental(prev *cst.Document, oldSrc, newSrc []byte, edit EditInfo) *cst.Document {
	return incremental.Parse(prev, oldSrc, newSrc, edit)
}

// RenderHTML folds the document into HTML with the default renderer.
func RenderHTML(doc *cst.Document) string {
	return htmlrender.Render(doc)
}

// Insert describes inserting length bytes at position.
func Insert(position, length int) EditInfo {
	return incremental.Insert(position, length)
}

// Delete describes deleting the bytes in [start, end).
func Delete(start, end int) EditInfo {
	return incremental.Delete(start, end)
}

// Replace describes replacing [start, oldEnd) with newLength bytes.
func Replace(start, oldEnd, newLength int) EditInfo {
	return incremental.Replace(start, oldEnd, newLength)
}
