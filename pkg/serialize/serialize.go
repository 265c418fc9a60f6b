// Package serialize turns a CST back into Markdown text. The lossless form
// replays each block's preserved source slice and reproduces the input
// byte-identically for an unedited tree; the normalizing form re-derives a
// canonical layout from the tree's semantics.
package serialize

import (
	"bytes"

	"github.com/yaklabco/mdtree/pkg/cst"
)

// Serialize reproduces the document's source text. For any tree produced by
// a full or incremental parse, the result equals the parsed source exactly:
// every top-level block replays the bytes its span covers, and block spans
// tile the source.
func Serialize(doc *cst.Document) []byte {
	var out bytes.Buffer
	out.Grow(len(doc.Source))
	for block := doc.Root.FirstChild; block != nil; block = block.Next {
		writeBlockSource(&out, block, doc.Source)
	}
	return out.Bytes()
}

// writeBlockSource emits one block's covered bytes. The slice replay never
// re-derives whitespace or markers; spans carry everything.
func writeBlockSource(out *bytes.Buffer, block *cst.Node, src []byte) {
	start, end := block.Span.Start, block.Span.End
	if start < 0 || end > len(src) || start > end {
		return
	}
	out.Write(src[start:end])
}
