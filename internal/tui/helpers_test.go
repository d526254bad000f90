package tui

import (
	"testing"

	"github.com/fennwick/tome/internal/doc"
)

func text(s string) *doc.Node {
	n := doc.NewNode(doc.KindText)
	n.Text = s
	return n
}

func markerNode(key string, active bool) *doc.Node {
	m := doc.NewNode(doc.KindMarker)
	m.Key = key
	m.Active = active
	m.AppendChild(text(key))
	return m
}

func para(children ...*doc.Node) *doc.Node {
	p := doc.NewNode(doc.KindParagraph)
	for _, c := range children {
		p.AppendChild(c)
	}
	return p
}

func testChapter() (*doc.Node, *doc.Node) {
	root := doc.NewNode(doc.KindDocument)
	root.AppendChild(para(text("intro")))
	m := markerNode("glider", true)
	root.AppendChild(para(text("see "), m))
	root.AppendChild(para(text("outro "), markerNode("local-rule", false)))
	return root, m
}

func TestActiveMarkersOrder(t *testing.T) {
	root, _ := testChapter()

	refs := activeMarkers(root)
	if len(refs) != 1 {
		t.Fatalf("active markers = %d, want 1 (inactive must be skipped)", len(refs))
	}
	if refs[0].key != "glider" {
		t.Errorf("marker key = %q", refs[0].key)
	}
}

func TestBlockContaining(t *testing.T) {
	root, m := testChapter()

	if i := blockContaining(root, m); i != 1 {
		t.Errorf("blockContaining = %d, want 1", i)
	}
	stray := text("elsewhere")
	if i := blockContaining(root, stray); i != -1 {
		t.Errorf("blockContaining for foreign node = %d, want -1", i)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 10); got != 5 {
		t.Errorf("clamp(5,0,10) = %d", got)
	}
	if got := clamp(-1, 0, 10); got != 0 {
		t.Errorf("clamp(-1,0,10) = %d", got)
	}
	if got := clamp(11, 0, 10); got != 10 {
		t.Errorf("clamp(11,0,10) = %d", got)
	}
}
