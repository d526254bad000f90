package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/fennwick/tome/internal/content"
	"github.com/fennwick/tome/internal/doc"
)

// ────────────────────────────────────────────────────────────
// Annotation lifecycle
// ────────────────────────────────────────────────────────────

// openAnnotation activates a marker: picks a surface for the current
// width, displaces any annotation already open, and kicks off
// resolution. The reveal starts when the resolved message lands.
func (m Model) openAnnotation(key string) (tea.Model, tea.Cmd) {
	m.closeAnnotation()

	m.annoGen++
	m.annoOpen = true
	m.annoKey = key
	m.annoTitle = content.Humanize(key)
	m.annoSurface = selectSurface(m.width, m.cfg.Reveal.PanelMinWidth)
	m.annoExpanded = true
	m.activePane = PaneReader
	m.panelVp.GotoTop()

	m.log.Info("opening annotation",
		zap.String("key", key),
		zap.String("surface", m.annoSurface.String()),
		zap.String("locale", string(m.locale)))

	m.syncViewport()
	return m, m.resolveAnnotation(key, m.annoGen)
}

// closeAnnotation dismisses the open annotation, leaving the chapter
// untouched. Safe to call when nothing is open.
func (m *Model) closeAnnotation() {
	if !m.annoOpen {
		return
	}
	m.unspliceInlineAnnotation()
	m.annoSlot.Clear()
	m.annoOpen = false
	m.annoKey = ""
	m.annoTitle = ""
	m.annoMount = nil
	m.activePane = PaneReader
}

// ────────────────────────────────────────────────────────────
// Inline surface splicing
// ────────────────────────────────────────────────────────────

// spliceInlineAnnotation inserts the annotation mount into the chapter
// tree, directly after the top-level block holding the marker. The
// chapter reveal appends at its own open stack, so insertion during a
// running reveal does not disturb it.
func (m *Model) spliceInlineAnnotation() {
	if m.annoMount == nil || m.chapterMount == nil {
		return
	}
	idx := len(m.chapterMount.Children) - 1
	if node := m.markerNodeForKey(m.annoKey); node != nil {
		if i := blockContaining(m.chapterMount, node); i >= 0 {
			idx = i
		}
	}

	children := m.chapterMount.Children
	children = append(children, nil)
	copy(children[idx+2:], children[idx+1:])
	children[idx+1] = m.annoMount
	m.chapterMount.Children = children
}

// unspliceInlineAnnotation removes the annotation mount from the
// chapter tree, if spliced.
func (m *Model) unspliceInlineAnnotation() {
	if m.annoMount == nil || m.chapterMount == nil {
		return
	}
	for i, child := range m.chapterMount.Children {
		if child == m.annoMount {
			m.chapterMount.Children = append(
				m.chapterMount.Children[:i], m.chapterMount.Children[i+1:]...)
			return
		}
	}
}

// rehomeAnnotation migrates an open annotation between surfaces when a
// resize crosses the panel threshold. The reveal keeps running; only
// the placement changes.
func (m *Model) rehomeAnnotation() {
	if !m.annoOpen {
		return
	}
	want := selectSurface(m.width, m.cfg.Reveal.PanelMinWidth)
	if want == m.annoSurface {
		return
	}
	switch want {
	case SurfaceInline:
		m.annoSurface = SurfaceInline
		m.annoExpanded = true
		m.activePane = PaneReader
		m.spliceInlineAnnotation()
	case SurfacePanel:
		m.unspliceInlineAnnotation()
		m.annoSurface = SurfacePanel
	}
}

func (m *Model) markerNodeForKey(key string) *doc.Node {
	for _, ref := range activeMarkers(m.chapterMount) {
		if ref.key == key {
			return ref.node
		}
	}
	return nil
}

// scrollToAnnotation brings a freshly spliced inline annotation into
// view by measuring the rendered height of everything above it.
func (m *Model) scrollToAnnotation() {
	if m.annoMount == nil || m.chapterMount == nil {
		return
	}
	idx := -1
	for i, child := range m.chapterMount.Children {
		if child == m.annoMount {
			idx = i
			break
		}
	}
	if idx <= 0 {
		m.viewport.GotoTop()
		return
	}

	ctx := renderCtx{width: m.viewport.Width - 2}
	if ctx.width < 10 {
		ctx.width = 10
	}
	above := doc.NewNode(doc.KindDocument)
	above.Children = m.chapterMount.Children[:idx]
	lines := lipgloss.Height(renderDocument(above, ctx))

	offset := lines - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

// ────────────────────────────────────────────────────────────
// Panel rendering
// ────────────────────────────────────────────────────────────

// renderPanel draws the side panel: annotation title, divider, and the
// scrollable body.
func renderPanel(m *Model) string {
	style := panelStyle
	if m.activePane == PanePanel {
		style = panelActiveStyle
	}

	title := panelTitleStyle.Render(truncate(m.annoTitle, m.panelVp.Width-4))
	divider := ruleStyle.Render(strings.Repeat("─", clamp(m.panelVp.Width-3, 1, 60)))

	body := m.panelVp.View()
	inner := lipgloss.JoinVertical(lipgloss.Left, title, divider, body)
	return style.Height(m.panelVp.Height).Render(inner)
}
