package tui

import (
	"strings"
	"testing"

	"github.com/fennwick/tome/internal/doc"
)

func TestRenderDocumentProse(t *testing.T) {
	root := doc.NewNode(doc.KindDocument)

	h := doc.NewNode(doc.KindHeading)
	h.Level = 1
	h.AppendChild(text("Rule 30"))
	root.AppendChild(h)
	root.AppendChild(para(text("One byte of physics.")))

	out := renderDocument(root, renderCtx{width: 60})
	if !strings.Contains(out, "Rule 30") {
		t.Error("heading text missing from output")
	}
	if !strings.Contains(out, "One byte of physics.") {
		t.Error("paragraph text missing from output")
	}
}

func TestRenderMarkerLifecycle(t *testing.T) {
	inactive := markerNode("glider", false)
	rootA := doc.NewNode(doc.KindDocument)
	rootA.AppendChild(para(text("see "), inactive))

	// An unactivated marker reads as plain prose: no styling beyond
	// the paragraph's, so its text equals the idle render of itself.
	plain := renderMarker(inactive, renderCtx{})
	if plain != markerIdleStyle.Render("glider") {
		t.Error("inactive marker did not render as plain prose")
	}

	active := markerNode("glider", true)
	got := renderMarker(active, renderCtx{})
	if got != markerActiveStyle.Render("glider") {
		t.Error("active marker missing link affordance")
	}

	sel := renderMarker(active, renderCtx{selected: active})
	if sel != markerSelectedStyle.Render("glider") {
		t.Error("selected marker not highlighted")
	}

	open := renderMarker(active, renderCtx{openKey: "glider"})
	if open != markerOpenStyle.Render("glider") {
		t.Error("open marker not distinguished")
	}
}

func TestRenderCodeBlockVerbatim(t *testing.T) {
	root := doc.NewNode(doc.KindDocument)
	cb := doc.NewNode(doc.KindCodeBlock)
	cb.Text = "rule(30)\nstep()\n"
	root.AppendChild(cb)

	out := renderDocument(root, renderCtx{width: 10})
	if !strings.Contains(out, "rule(30)") || !strings.Contains(out, "step()") {
		t.Error("code block lines missing")
	}
	// Narrow width must not rewrap code.
	if len(strings.Split(out, "\n")) != 2 {
		t.Errorf("code block rendered %d lines, want 2", len(strings.Split(out, "\n")))
	}
}

func TestRenderImagePlaceholder(t *testing.T) {
	img := doc.NewNode(doc.KindImage)
	img.Text = "rows of rule 30"
	img.Dest = "images/rule-30.png"
	root := doc.NewNode(doc.KindDocument)
	root.AppendChild(img)

	out := renderDocument(root, renderCtx{width: 60})
	if !strings.Contains(out, "[image: rows of rule 30]") {
		t.Errorf("image placeholder missing: %q", out)
	}
}

func TestRenderInlineAnnotationCollapsed(t *testing.T) {
	anno := doc.NewNode(doc.KindAnnotation)
	anno.Key = "glider"
	root := doc.NewNode(doc.KindDocument)
	root.AppendChild(para(text("prose")))
	root.AppendChild(anno)

	expanded := renderDocument(root, renderCtx{
		width: 60, annoTitle: "Glider", annoExpanded: true, annoBody: "five cells"})
	if !strings.Contains(expanded, "Glider") || !strings.Contains(expanded, "five cells") {
		t.Error("expanded annotation missing title or body")
	}

	collapsed := renderDocument(root, renderCtx{
		width: 60, annoTitle: "Glider", annoExpanded: false, annoBody: "five cells"})
	if strings.Contains(collapsed, "five cells") {
		t.Error("collapsed annotation still shows its body")
	}
	if !strings.Contains(collapsed, "Glider") {
		t.Error("collapsed annotation lost its title row")
	}
}

func TestRenderList(t *testing.T) {
	list := doc.NewNode(doc.KindList)
	list.Ordered = true
	for _, s := range []string{"locality", "uniformity"} {
		item := doc.NewNode(doc.KindListItem)
		item.AppendChild(para(text(s)))
		list.AppendChild(item)
	}
	root := doc.NewNode(doc.KindDocument)
	root.AppendChild(list)

	out := renderDocument(root, renderCtx{width: 40})
	if !strings.Contains(out, "1. ") || !strings.Contains(out, "2. ") {
		t.Errorf("ordered list numbering missing: %q", out)
	}
}

func TestPlaceholderTreeNamesKey(t *testing.T) {
	tree := placeholderTree("no-such-key")
	if !strings.Contains(tree.PlainText(), "no-such-key") {
		t.Error("placeholder does not name the missing key")
	}
}
