package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fennwick/tome/internal/reveal"
)

// renderHeader produces the top bar:
//
//	TOME  |  Simple Rules, Complex Worlds  |  Rule 30  |  日本語
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("TOME")
	sep := headerSepStyle.Render(" │ ")

	var parts []string
	parts = append(parts, brand)
	parts = append(parts, sep)
	parts = append(parts, headerMetaStyle.Render(truncate(m.manifest.Title, 40)))

	if !m.showToc && m.chapterTitle != "" {
		parts = append(parts, sep)
		parts = append(parts, headerMetaStyle.Render(
			fmt.Sprintf("%d/%d %s",
				m.chapterIdx+1, len(m.manifest.Chapters),
				truncate(m.chapterTitle, 30))))
	}

	parts = append(parts, sep)
	parts = append(parts, headerLocaleStyle.Render(m.locale.Label()))

	return headerBarStyle.Width(m.width).Render(strings.Join(parts, ""))
}

// renderFooter produces the bottom status bar: reveal progress while a
// session runs, status text, and keyboard hints.
func renderFooter(m *Model) string {
	var left, right string

	switch {
	case m.err != nil:
		left = statusErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case m.statusMsg != "":
		left = statusStyle.Render(m.statusMsg)
	default:
		if s := m.runningSession(); s != nil {
			done, total := s.Progress()
			pct := 0.0
			if total > 0 {
				pct = float64(done) / float64(total)
			}
			left = statusStyle.Render(m.progressBar.ViewAs(pct))
		}
	}

	if m.showToc {
		right = renderHints([]hint{
			{"↑↓", "navigate"},
			{"enter", "read"},
			{"l", "locale"},
			{"q", "quit"},
		})
	} else if m.annoOpen {
		hints := []hint{
			{"esc", "close"},
			{"n", "marker"},
			{"s", "skip"},
		}
		if m.annoSurface == SurfaceInline {
			hints = append(hints, hint{"z", "fold"})
		} else {
			hints = append(hints, hint{"tab", "pane"})
		}
		hints = append(hints, hint{"q", "quit"})
		right = renderHints(hints)
	} else {
		right = renderHints([]hint{
			{"↑↓", "scroll"},
			{"n", "marker"},
			{"enter", "open"},
			{"[ ]", "chapter"},
			{"l", "locale"},
			{"s", "skip"},
			{"esc", "contents"},
			{"q", "quit"},
		})
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}

// runningSession returns the session the footer should report on, the
// annotation's when it is revealing, otherwise the chapter's.
func (m *Model) runningSession() *reveal.Session {
	if s := m.annoSlot.Session(); s != nil && s.Status() == reveal.StatusRunning {
		return s
	}
	if s := m.chapterSlot.Session(); s != nil && s.Status() == reveal.StatusRunning {
		return s
	}
	return nil
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
