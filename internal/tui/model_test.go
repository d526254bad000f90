package tui

import (
	"strings"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fennwick/tome/internal/config"
	"github.com/fennwick/tome/internal/content"
	"github.com/fennwick/tome/internal/prefs"
	"github.com/fennwick/tome/internal/reveal"
)

func testModel(t *testing.T, width int) Model {
	t.Helper()

	lib := fstest.MapFS{
		"chapters/emergence.md": {Data: []byte(
			"# Emergence\n\nEach part follows a [local rule](annotation:local-rule).\n")},
		"chapters/rule-30.md": {Data: []byte(
			"# Rule 30\n\nOne byte of physics.\n")},
		"annotations/local-rule.md": {Data: []byte(
			"# Local Rule\n\nBounded neighborhoods only.\n")},
	}
	manifest := &content.Manifest{
		Title: "Test Book",
		Chapters: []content.ChapterRef{
			{Key: "emergence", Title: "Emergence"},
			{Key: "rule-30", Title: "Rule 30"},
		},
	}
	cfg := &config.Config{
		Content: config.ContentConfig{Locale: "en"},
		Reveal:  config.RevealConfig{IntervalMs: 1, PanelMinWidth: 110},
		Log:     config.LogConfig{Level: "info"},
	}

	resolver := content.NewResolver(content.NewFSFetcher(lib), nil)
	m := NewModel(resolver, manifest, prefs.NopStore{}, cfg, nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: 40})
	return updated.(Model)
}

// step feeds a message through Update and returns the new model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// open resolves and presents a chapter synchronously by running the
// resolution command inline.
func open(t *testing.T, m Model, idx int) Model {
	t.Helper()
	m2, cmd := m.openChapter(idx)
	m = m2.(Model)
	if cmd == nil {
		t.Fatal("openChapter produced no command")
	}
	m, _ = step(t, m, cmd())
	return m
}

func TestOpenChapterStartsReveal(t *testing.T) {
	m := open(t, testModel(t, 120), 0)

	if m.showToc {
		t.Error("chapter list still showing after resolution")
	}
	if m.chapterTitle != "Emergence" {
		t.Errorf("chapter title = %q", m.chapterTitle)
	}
	s := m.chapterSlot.Session()
	if s == nil || s.Status() != reveal.StatusRunning {
		t.Fatal("no running reveal session after resolution")
	}
	if len(m.chapterMount.Children) != 0 {
		t.Error("mount already populated before the first tick")
	}

	m, _ = step(t, m, revealTickMsg{chapter: true, gen: m.chapterGen})
	if len(m.chapterMount.Children) == 0 {
		t.Error("first tick revealed nothing")
	}
}

func TestStaleResolutionDropped(t *testing.T) {
	m := testModel(t, 120)

	m2, cmd := m.openChapter(0)
	m = m2.(Model)
	stale := cmd()

	// Navigate again before the first resolution lands.
	m2, cmd2 := m.openChapter(1)
	m = m2.(Model)

	m, _ = step(t, m, stale)
	if m.chapterTitle == "Emergence" {
		t.Fatal("stale chapter resolution was applied")
	}

	m, _ = step(t, m, cmd2())
	if m.chapterTitle != "Rule 30" {
		t.Errorf("chapter title = %q, want the current navigation's", m.chapterTitle)
	}
}

func TestStaleTickDropped(t *testing.T) {
	m := open(t, testModel(t, 120), 0)

	staleGen := m.chapterGen
	m = open(t, m, 1)

	before := len(m.chapterMount.Children)
	m, _ = step(t, m, revealTickMsg{chapter: true, gen: staleGen})
	if len(m.chapterMount.Children) != before {
		t.Error("tick from a previous generation advanced the new session")
	}
}

func TestAnnotationPanelOnWideTerminal(t *testing.T) {
	m := open(t, testModel(t, 120), 0)
	m, _ = step(t, m, revealTickMsg{chapter: true, gen: m.chapterGen})
	m.chapterSlot.Session().Drain()
	m.syncViewport()

	m.cycleMarker(1)
	refs := activeMarkers(m.chapterMount)
	if len(refs) != 1 {
		t.Fatalf("active markers = %d, want 1", len(refs))
	}

	m2, cmd := m.openAnnotation(refs[0].key)
	m = m2.(Model)
	if m.annoSurface != SurfacePanel {
		t.Errorf("surface = %v, want panel at width 120", m.annoSurface)
	}
	m, _ = step(t, m, cmd())

	if m.annoTitle != "Local Rule" {
		t.Errorf("annotation title = %q", m.annoTitle)
	}
	s := m.annoSlot.Session()
	if s == nil || s.Status() != reveal.StatusRunning {
		t.Fatal("annotation reveal not running")
	}
	for _, child := range m.chapterMount.Children {
		if child == m.annoMount {
			t.Fatal("panel annotation was spliced into the chapter tree")
		}
	}
}

func TestAnnotationInlineOnNarrowTerminal(t *testing.T) {
	m := open(t, testModel(t, 80), 0)
	m.chapterSlot.Session().Drain()
	m.syncViewport()

	refs := activeMarkers(m.chapterMount)
	if len(refs) != 1 {
		t.Fatalf("active markers = %d, want 1", len(refs))
	}

	m2, cmd := m.openAnnotation(refs[0].key)
	m = m2.(Model)
	if m.annoSurface != SurfaceInline {
		t.Fatalf("surface = %v, want inline at width 80", m.annoSurface)
	}
	m, _ = step(t, m, cmd())

	// The annotation node sits directly after the block holding its
	// marker.
	idx := blockContaining(m.chapterMount, refs[0].node)
	if idx < 0 {
		t.Fatal("marker block not found")
	}
	if m.chapterMount.Children[idx+1] != m.annoMount {
		t.Error("inline annotation not spliced after the marker's block")
	}

	m.closeAnnotation()
	for _, child := range m.chapterMount.Children {
		if child == m.annoMount {
			t.Error("annotation still spliced after close")
		}
	}
}

func TestAnnotationSingleton(t *testing.T) {
	m := open(t, testModel(t, 120), 0)
	m.chapterSlot.Session().Drain()
	m.syncViewport()

	refs := activeMarkers(m.chapterMount)
	m2, cmd := m.openAnnotation(refs[0].key)
	m = m2.(Model)
	m, _ = step(t, m, cmd())
	first := m.annoSlot.Session()

	m2, cmd = m.openAnnotation(refs[0].key)
	m = m2.(Model)
	m, _ = step(t, m, cmd())

	if first.Status() == reveal.StatusRunning {
		t.Error("displaced annotation session still running")
	}
	if m.annoSlot.Session() == first {
		t.Error("slot still holds the displaced session")
	}
}

func TestRehomeOnResize(t *testing.T) {
	m := open(t, testModel(t, 120), 0)
	m.chapterSlot.Session().Drain()
	m.syncViewport()

	refs := activeMarkers(m.chapterMount)
	m2, cmd := m.openAnnotation(refs[0].key)
	m = m2.(Model)
	m, _ = step(t, m, cmd())
	if m.annoSurface != SurfacePanel {
		t.Fatalf("surface = %v, want panel", m.annoSurface)
	}

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 70, Height: 40})
	if m.annoSurface != SurfaceInline {
		t.Fatal("annotation did not migrate inline on shrink")
	}
	found := false
	for _, child := range m.chapterMount.Children {
		if child == m.annoMount {
			found = true
		}
	}
	if !found {
		t.Error("migrated annotation not spliced into the chapter tree")
	}

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	if m.annoSurface != SurfacePanel {
		t.Fatal("annotation did not migrate back to the panel on grow")
	}
	for _, child := range m.chapterMount.Children {
		if child == m.annoMount {
			t.Error("annotation left spliced after migrating to the panel")
		}
	}
}

func TestMissingChapterShowsPlaceholder(t *testing.T) {
	m := testModel(t, 120)
	m.manifest.Chapters = append(m.manifest.Chapters, content.ChapterRef{Key: "ghost"})

	m = open(t, m, 2)
	m.chapterSlot.Session().Drain()

	if got := m.chapterMount.PlainText(); !strings.Contains(got, "ghost") {
		t.Errorf("placeholder does not name the missing key: %q", got)
	}
}
