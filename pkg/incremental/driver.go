package incremental

import (
	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/cst"
	"github.com/yaklabco/mdtree/pkg/parser"
)

// Parse reparses newSrc incrementally against the previous tree. Blocks
// before the damage window share their subtrees with the previous document
// (only the top-level node is copied, since sibling links are per-document
// state); blocks after it are cloned with spans shifted by the edit delta;
// the window itself is reparsed from the new bytes. The previous document
// is never mutated and stays valid.
//
// The edit must reconcile oldSrc with newSrc; if it does not, or if the
// splice would violate the coverage invariant, the function degrades to a
// full reparse of newSrc.
func Parse(prev *cst.Document, oldSrc, newSrc []byte, edit EditInfo) *cst.Document {
	if prev == nil || !editConsistent(oldSrc, newSrc, edit) {
		return fullReparse(newSrc, edit, "edit does not reconcile sources")
	}

	blocks := prev.Root.Children()
	if len(blocks) == 0 {
		return fullReparse(newSrc, edit, "previous document empty")
	}

	lo, hi := damageWindow(blocks, edit)
	delta := edit.Delta()

	// Reparse the window's bytes in the new source.
	winStart := blocks[lo].Span.Start
	winEnd := blocks[hi].Span.End + delta
	if winStart < 0 || winEnd > len(newSrc) || winStart > winEnd {
		return fullReparse(newSrc, edit, "damage window out of range")
	}
	reparsed := parser.Parse(newSrc[winStart:winEnd])
	fresh := reparsed.Root.Children()
	for _, b := range fresh {
		shiftSpans(b, winStart)
	}

	// An unterminated construct at the window's edge could swallow the
	// blocks that follow; only a full parse can see that far.
	if hi < len(blocks)-1 && endsUnterminated(fresh) {
		return fullReparse(newSrc, edit, "window ends in unterminated block")
	}

	root := cst.NewNode(cst.KindDocument, cst.Span{Start: 0, End: len(newSrc)})
	for _, b := range blocks[:lo] {
		root.AppendChild(shareBlock(b))
	}
	for _, b := range fresh {
		root.AppendChild(b)
	}
	for _, b := range blocks[hi+1:] {
		root.AppendChild(b.CloneShifted(delta))
	}

	doc := &cst.Document{Root: root, Source: reowned(newSrc)}
	if !doc.CoversSource() {
		return fullReparse(newSrc, edit, "spliced spans do not tile the source")
	}
	return doc
}

func fullReparse(newSrc []byte, edit EditInfo, reason string) *cst.Document {
	logging.Default().Debug("incremental fallback",
		logging.FieldReason, reason,
		logging.FieldEditStart, edit.Start,
		logging.FieldEditOldEnd, edit.OldEnd,
		logging.FieldEditNewEnd, edit.NewEnd,
	)
	return parser.Parse(newSrc)
}

// shareBlock returns a copy of a reused top-level block. Its child subtrees
// are shared with the previous document and stay immutable; only the node
// itself is copied, because appending it rewrites the sibling link and that
// must not be visible through the old tree.
func shareBlock(b *cst.Node) *cst.Node {
	shared := *b
	shared.Next = nil
	return &shared
}

// damageWindow locates the top-level blocks touched by the edit and expands
// by one block on each side when the edit touches a block boundary or a
// blank-line run, guarding against block merges and splits.
func damageWindow(blocks []*cst.Node, edit EditInfo) (int, int) {
	lo := 0
	for lo < len(blocks)-1 && blocks[lo].Span.End <= edit.Start {
		lo++
	}
	hi := len(blocks) - 1
	for hi > 0 && blocks[hi].Span.Start >= edit.OldEnd {
		hi--
	}
	if hi < lo {
		hi = lo
	}

	if lo > 0 && (edit.Start <= blocks[lo].Span.Start || blocks[lo].Kind == cst.KindBlankLines) {
		lo--
	}
	if hi < len(blocks)-1 && (edit.OldEnd >= blocks[hi].Span.End || blocks[hi].Kind == cst.KindBlankLines) {
		hi++
	}
	return lo, hi
}

func editConsistent(oldSrc, newSrc []byte, edit EditInfo) bool {
	if edit.Start < 0 || edit.Start > edit.OldEnd || edit.Start > edit.NewEnd {
		return false
	}
	if edit.OldEnd > len(oldSrc) || edit.NewEnd > len(newSrc) {
		return false
	}
	return len(newSrc) == len(oldSrc)+edit.Delta()
}

// endsUnterminated reports whether the reparsed window's last leaf is a
// fence or raw HTML block that ran to the window's end without closing.
func endsUnterminated(blocks []*cst.Node) bool {
	if len(blocks) == 0 {
		return false
	}
	last := blocks[len(blocks)-1]
	switch last.Kind {
	case cst.KindFencedCode:
		return !last.Block.Code.Closed
	case cst.KindHTMLBlock:
		return true
	default:
		return false
	}
}

func shiftSpans(n *cst.Node, delta int) {
	if delta == 0 {
		return
	}
	//nolint:errcheck // shifting never fails
	cst.Walk(n, func(node *cst.Node) error {
		node.Span = node.Span.Shifted(delta)
		if node.Block != nil && node.Block.Code != nil {
			code := *node.Block.Code
			code.Body = code.Body.Shifted(delta)
			node.Block.Code = &code
		}
		return nil
	})
}

func reowned(src []byte) []byte {
	owned := make([]byte, len(src))
	copy(owned, src)
	return owned
}
