package cst_test

import (
	"testing"

	"github.com/yaklabco/mdtree/pkg/cst"
)

func TestSpan(t *testing.T) {
	t.Parallel()

	s := cst.Span{Start: 3, End: 8}

	if s.Len() != 5 {
		t.Errorf("Len = %d, want 5", s.Len())
	}
	if s.IsEmpty() {
		t.Error("non-empty span reported empty")
	}
	if !s.Contains(3) || s.Contains(8) {
		t.Error("Contains must be start-inclusive, end-exclusive")
	}

	shifted := s.Shifted(-2)
	if shifted.Start != 1 || shifted.End != 6 {
		t.Errorf("Shifted(-2) = %+v", shifted)
	}
}

func TestAppendChildAndChildren(t *testing.T) {
	t.Parallel()

	parent := cst.NewNode(cst.KindParagraph, cst.Span{Start: 0, End: 10})
	a := cst.NewNode(cst.KindText, cst.Span{Start: 0, End: 4})
	b := cst.NewNode(cst.KindText, cst.Span{Start: 4, End: 10})

	parent.AppendChild(a)
	parent.AppendChild(b)

	if parent.ChildCount() != 2 {
		t.Fatalf("ChildCount = %d, want 2", parent.ChildCount())
	}
	children := parent.Children()
	if children[0] != a || children[1] != b {
		t.Error("children out of order")
	}
	if !parent.HasChildren() {
		t.Error("HasChildren false with two children")
	}
}

func TestSpansTile(t *testing.T) {
	t.Parallel()

	mk := func(spans ...cst.Span) []*cst.Node {
		nodes := make([]*cst.Node, len(spans))
		for i, s := range spans {
			nodes[i] = cst.NewNode(cst.KindParagraph, s)
		}
		return nodes
	}

	tests := []struct {
		name   string
		nodes  []*cst.Node
		length int
		want   bool
	}{
		{"empty zero length", nil, 0, true},
		{"empty nonzero length", nil, 5, false},
		{"exact tile", mk(cst.Span{Start: 0, End: 3}, cst.Span{Start: 3, End: 7}), 7, true},
		{"gap", mk(cst.Span{Start: 0, End: 3}, cst.Span{Start: 4, End: 7}), 7, false},
		{"overlap", mk(cst.Span{Start: 0, End: 4}, cst.Span{Start: 3, End: 7}), 7, false},
		{"short", mk(cst.Span{Start: 0, End: 3}), 7, false},
		{"offset start", mk(cst.Span{Start: 1, End: 7}), 7, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if got := cst.SpansTile(testCase.nodes, testCase.length); got != testCase.want {
				t.Errorf("SpansTile = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestCloneShifted(t *testing.T) {
	t.Parallel()

	root := cst.NewNode(cst.KindParagraph, cst.Span{Start: 10, End: 20})
	child := cst.NewNode(cst.KindText, cst.Span{Start: 10, End: 20})
	root.AppendChild(child)

	clone := root.CloneShifted(5)

	if clone.Span.Start != 15 || clone.Span.End != 25 {
		t.Errorf("clone span = %+v", clone.Span)
	}
	if clone.FirstChild.Span.Start != 15 {
		t.Errorf("clone child span = %+v", clone.FirstChild.Span)
	}
	if root.Span.Start != 10 || root.FirstChild.Span.Start != 10 {
		t.Error("original tree mutated by CloneShifted")
	}
}

func TestWalkOrderAndFind(t *testing.T) {
	t.Parallel()

	root := cst.NewNode(cst.KindDocument, cst.Span{Start: 0, End: 10})
	para := cst.NewNode(cst.KindParagraph, cst.Span{Start: 0, End: 10})
	text := cst.NewNode(cst.KindText, cst.Span{Start: 0, End: 10})
	para.AppendChild(text)
	root.AppendChild(para)

	var order []cst.NodeKind
	err := cst.Walk(root, func(n *cst.Node) error {
		order = append(order, n.Kind)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk returned %v", err)
	}
	want := []cst.NodeKind{cst.KindDocument, cst.KindParagraph, cst.KindText}
	if len(order) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("visit %d = %v, want %v", i, order[i], want[i])
		}
	}

	if found := cst.FindFirst(root, func(n *cst.Node) bool { return n.Kind == cst.KindText }); found != text {
		t.Error("FindFirst did not locate the text node")
	}
	if got := cst.FindByKind(root, cst.KindParagraph); len(got) != 1 || got[0] != para {
		t.Error("FindByKind did not locate the paragraph")
	}
}

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Foo", "foo"},
		{"  Foo   Bar ", "foo bar"},
		{"foo\n  bar", "foo bar"},
		{"", ""},
		{"   ", ""},
	}

	for _, testCase := range tests {
		if got := cst.NormalizeLabel(testCase.in); got != testCase.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", testCase.in, got, testCase.want)
		}
	}
}
