package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fennwick/tome/internal/prefs"
)

// renderToc draws the chapter list. Titles come from the manifest; the
// locale-specific title appears once a chapter has been read.
func renderToc(m *Model) string {
	if len(m.manifest.Chapters) == 0 {
		return emptyStateStyle.Render("This book has no chapters.")
	}

	recent := recentKeys(m.prefs, 5)

	var rows []string
	rows = append(rows, "")
	rows = append(rows, headingStyle.Padding(0, 1).Render(m.manifest.Title))
	rows = append(rows, "")

	for i, ch := range m.manifest.Chapters {
		num := tocNumberStyle.Render(fmt.Sprintf("%2d ", i+1))
		label := ch.Title
		if label == "" {
			label = ch.Key
		}

		line := num + truncate(label, m.width-10)
		if recent[ch.Key] {
			line += tocRecentStyle.Render("  ·")
		}

		if i == m.tocCursor {
			rows = append(rows, tocSelectedStyle.Width(m.width-2).Render(line))
		} else {
			rows = append(rows, tocItemStyle.Render(line))
		}
	}

	body := strings.Join(rows, "\n")
	height := m.height - 2
	return lipgloss.NewStyle().Height(height).Render(body)
}

// recentKeys returns the set of recently read chapter keys, for the
// reading-history dot in the list.
func recentKeys(store prefs.Store, limit int) map[string]bool {
	keys := make(map[string]bool)
	entries, err := store.RecentReadings(limit)
	if err != nil {
		return keys
	}
	for _, e := range entries {
		keys[e.ChapterKey] = true
	}
	return keys
}
