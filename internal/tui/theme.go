package tui

import "github.com/charmbracelet/lipgloss"

// ────────────────────────────────────────────────────────────
// Color Palette — GitHub Dark aesthetic
// ────────────────────────────────────────────────────────────
//
// All colors are defined here. No ad-hoc color literals anywhere.
// Designed for readability in dark terminals and for long reading
// sessions.

var (
	// Base
	colorBg        = lipgloss.Color("#0d1117")
	colorBgPanel   = lipgloss.Color("#161b22")
	colorBgSurface = lipgloss.Color("#1c2128")

	// Text
	colorText      = lipgloss.Color("#e6edf3")
	colorTextDim   = lipgloss.Color("#8b949e")
	colorTextMuted = lipgloss.Color("#484f58")

	// Accents
	colorBlue   = lipgloss.Color("#58a6ff")
	colorGreen  = lipgloss.Color("#3fb950")
	colorRed    = lipgloss.Color("#f85149")
	colorYellow = lipgloss.Color("#d29922")
	colorPurple = lipgloss.Color("#bc8cff")
	colorCyan   = lipgloss.Color("#76e3ea")

	// Structural
	colorDivider   = lipgloss.Color("#30363d")
	colorHighlight = lipgloss.Color("#1f6feb")
)

// ────────────────────────────────────────────────────────────
// Component Styles
// ────────────────────────────────────────────────────────────

// Header bar
var (
	headerBarStyle = lipgloss.NewStyle().
			Background(colorBgSurface).
			Foreground(colorText).
			Padding(0, 1)

	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorBlue)

	headerSepStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	headerMetaStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	headerLocaleStyle = lipgloss.NewStyle().
				Foreground(colorCyan)
)

// Prose blocks
var (
	headingStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	subheadingStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	paragraphStyle = lipgloss.NewStyle().
			Foreground(colorText)

	blockquoteStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	quoteBarStyle = lipgloss.NewStyle().
			Foreground(colorDivider)

	listBulletStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	codeBlockStyle = lipgloss.NewStyle().
			Background(colorBgPanel).
			Foreground(colorGreen).
			Padding(0, 1)

	ruleStyle = lipgloss.NewStyle().
			Foreground(colorDivider)

	imageStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Italic(true)
)

// Inline spans
var (
	emphasisStyle = lipgloss.NewStyle().
			Italic(true)

	strongStyle = lipgloss.NewStyle().
			Bold(true)

	codeSpanStyle = lipgloss.NewStyle().
			Background(colorBgPanel).
			Foreground(colorGreen)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Underline(true)

	linkExternalStyle = lipgloss.NewStyle().
				Foreground(colorBlue)
)

// Annotation markers. A marker reads as plain prose until its element
// finishes revealing; only then does it pick up link affordances.
var (
	markerIdleStyle = lipgloss.NewStyle().
			Foreground(colorText)

	markerActiveStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Underline(true)

	markerSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true)

	markerOpenStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Underline(true)
)

// Annotation surfaces
var (
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.Border{
			Top:    "",
			Bottom: "",
			Left:   "│",
			Right:  "",
		}).
		BorderForeground(colorDivider)

	panelActiveStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.Border{
			Top:    "",
			Bottom: "",
			Left:   "│",
			Right:  "",
		}).
		BorderForeground(colorBlue)

	panelTitleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	inlineAnnoStyle = lipgloss.NewStyle().
			Background(colorBgPanel).
			Padding(0, 1)

	inlineAnnoTitleStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Bold(true)

	inlineAnnoHintStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted)
)

// Chapter list
var (
	tocItemStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	tocSelectedStyle = lipgloss.NewStyle().
				Background(colorHighlight).
				Foreground(colorText).
				Bold(true).
				Padding(0, 1)

	tocNumberStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	tocRecentStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(2, 4)
)

// Footer / status bar
var (
	statusStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorBgSurface).
			Padding(0, 1)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(colorRed).
				Background(colorBgSurface).
				Padding(0, 1)

	hintKeyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintDescStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)
