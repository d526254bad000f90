package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/fennwick/tome/internal/config"
	"github.com/fennwick/tome/internal/content"
	"github.com/fennwick/tome/internal/doc"
	"github.com/fennwick/tome/internal/prefs"
	"github.com/fennwick/tome/internal/reveal"
)

// ────────────────────────────────────────────────────────────
// Pane focuses
// ────────────────────────────────────────────────────────────

// Pane represents which surface currently has scroll focus.
type Pane int

const (
	PaneReader Pane = iota
	PanePanel
)

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the tome reader. State is
// organized by concern; rendering is delegated to component functions
// in separate files.
type Model struct {
	resolver *content.Resolver
	manifest *content.Manifest
	prefs    prefs.Store
	log      *zap.Logger
	cfg      *config.Config

	locale content.Locale
	width  int
	height int
	ready  bool

	// Chapter list
	showToc   bool
	tocCursor int

	// Chapter surface. The mount is shared with the running session;
	// every render reads whatever has been revealed so far.
	chapterIdx   int
	chapterGen   int
	chapterMount *doc.Node
	chapterSlot  reveal.Slot
	chapterTitle string
	viewport     viewport.Model
	progressBar  progress.Model

	activePane   Pane
	markerCursor int

	// Annotation surface
	annoGen      int
	annoOpen     bool
	annoKey      string
	annoTitle    string
	annoMount    *doc.Node
	annoSlot     reveal.Slot
	annoSurface  Surface
	annoExpanded bool
	panelVp      viewport.Model

	statusMsg string
	err       error
}

// NewModel creates the reader model. The starting locale comes from
// preferences when stored, otherwise from config.
func NewModel(resolver *content.Resolver, manifest *content.Manifest, store prefs.Store, cfg *config.Config, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	locale := content.Locale(cfg.Content.Locale)
	if saved, err := store.Get(prefs.KeyLocale); err == nil && saved != "" {
		if parsed, err := content.ParseLocale(saved); err == nil {
			locale = parsed
		}
	}

	chapterIdx := 0
	if saved, err := store.Get(prefs.KeyChapter); err == nil && saved != "" {
		for i, ch := range manifest.Chapters {
			if ch.Key == saved {
				chapterIdx = i
				break
			}
		}
	}

	return Model{
		resolver:     resolver,
		manifest:     manifest,
		prefs:        store,
		log:          log,
		cfg:          cfg,
		locale:       locale,
		showToc:      true,
		tocCursor:    chapterIdx,
		chapterIdx:   chapterIdx,
		markerCursor: -1,
		progressBar:  progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) interval() time.Duration {
	return time.Duration(m.cfg.Reveal.IntervalMs) * time.Millisecond
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type chapterResolvedMsg struct {
	gen int
	res *content.Resolved
	err error
}

type annotationResolvedMsg struct {
	gen int
	key string
	res *content.Resolved
	err error
}

// revealTickMsg drives one step of a running session. The generation
// stamps the tick so a tick scheduled before a navigation cannot
// advance the session that replaced it.
type revealTickMsg struct {
	chapter bool
	gen     int
}

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) resolveChapter(key string, gen int) tea.Cmd {
	loc := m.locale
	return func() tea.Msg {
		res, err := m.resolver.Resolve(content.CollectionChapters, key, loc)
		return chapterResolvedMsg{gen: gen, res: res, err: err}
	}
}

func (m Model) resolveAnnotation(key string, gen int) tea.Cmd {
	loc := m.locale
	return func() tea.Msg {
		res, err := m.resolver.Resolve(content.CollectionAnnotations, key, loc)
		return annotationResolvedMsg{gen: gen, key: key, res: res, err: err}
	}
}

func (m Model) tickChapter() tea.Cmd {
	gen := m.chapterGen
	return tea.Tick(m.interval(), func(time.Time) tea.Msg {
		return revealTickMsg{chapter: true, gen: gen}
	})
}

func (m Model) tickAnnotation() tea.Cmd {
	gen := m.annoGen
	return tea.Tick(m.interval(), func(time.Time) tea.Msg {
		return revealTickMsg{chapter: false, gen: gen}
	})
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.rehomeAnnotation()
		m.syncViewport()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case chapterResolvedMsg:
		if msg.gen != m.chapterGen {
			return m, nil
		}
		return m.chapterResolved(msg)

	case annotationResolvedMsg:
		if msg.gen != m.annoGen || !m.annoOpen || msg.key != m.annoKey {
			return m, nil
		}
		return m.annotationResolved(msg)

	case revealTickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

func (m Model) chapterResolved(msg chapterResolvedMsg) (tea.Model, tea.Cmd) {
	key := m.manifest.Chapters[m.chapterIdx].Key

	var tree *doc.Node
	if msg.err != nil {
		m.log.Warn("chapter resolution failed",
			zap.String("key", key),
			zap.String("locale", string(m.locale)),
			zap.Error(msg.err))
		tree = placeholderTree(key)
		m.chapterTitle = content.Humanize(key)
	} else {
		tree = msg.res.Tree
		m.chapterTitle = msg.res.Title
	}

	m.chapterMount = doc.NewNode(doc.KindDocument)
	session := reveal.NewSession(tree, m.chapterMount, m.interval())
	reveal.NewMonitor(nil).Attach(session)
	m.chapterSlot.Present(session)

	m.showToc = false
	m.markerCursor = -1
	m.activePane = PaneReader
	m.statusMsg = ""
	m.syncViewport()
	m.viewport.GotoTop()

	if err := m.prefs.Set(prefs.KeyChapter, key); err != nil {
		m.log.Warn("persisting chapter failed", zap.Error(err))
	}
	if err := m.prefs.LogReading(key, string(m.locale)); err != nil {
		m.log.Warn("logging reading failed", zap.Error(err))
	}

	return m, m.tickChapter()
}

func (m Model) annotationResolved(msg annotationResolvedMsg) (tea.Model, tea.Cmd) {
	var tree *doc.Node
	if msg.err != nil {
		m.log.Warn("annotation resolution failed",
			zap.String("key", msg.key),
			zap.String("locale", string(m.locale)),
			zap.Error(msg.err))
		tree = placeholderTree(msg.key)
		m.annoTitle = content.Humanize(msg.key)
	} else {
		tree = msg.res.Tree
		m.annoTitle = msg.res.Title
	}

	m.annoMount = doc.NewNode(doc.KindAnnotation)
	m.annoMount.Key = msg.key
	session := reveal.NewSession(tree, m.annoMount, m.interval())
	reveal.NewMonitor(nil).Attach(session)
	m.annoSlot.Present(session)

	if m.annoSurface == SurfaceInline {
		m.spliceInlineAnnotation()
	}
	m.syncViewport()
	if m.annoSurface == SurfaceInline {
		m.scrollToAnnotation()
	}

	return m, m.tickAnnotation()
}

func (m Model) handleTick(msg revealTickMsg) (tea.Model, tea.Cmd) {
	if msg.chapter {
		if msg.gen != m.chapterGen {
			return m, nil
		}
		s := m.chapterSlot.Session()
		if s == nil || s.Status() != reveal.StatusRunning {
			return m, nil
		}
		s.Step()
		m.syncViewport()
		if s.Status() == reveal.StatusRunning {
			return m, m.tickChapter()
		}
		return m, nil
	}

	if msg.gen != m.annoGen || !m.annoOpen {
		return m, nil
	}
	s := m.annoSlot.Session()
	if s == nil || s.Status() != reveal.StatusRunning {
		return m, nil
	}
	s.Step()
	m.syncViewport()
	if s.Status() == reveal.StatusRunning {
		return m, m.tickAnnotation()
	}
	return m, nil
}

// handleKey routes keyboard input based on current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ── Global ──

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.annoOpen {
			m.closeAnnotation()
			m.syncViewport()
			return m, nil
		}
		if !m.showToc {
			m.showToc = true
			m.tocCursor = m.chapterIdx
		}
		return m, nil
	}

	// ── Chapter list mode ──

	if m.showToc {
		switch key {
		case "j", "down":
			m.tocCursor = clamp(m.tocCursor+1, 0, len(m.manifest.Chapters)-1)
		case "k", "up":
			m.tocCursor = clamp(m.tocCursor-1, 0, len(m.manifest.Chapters)-1)
		case "l":
			return m.cycleLocale()
		case "enter":
			return m.openChapter(m.tocCursor)
		}
		return m, nil
	}

	// ── Reader mode ──

	switch key {
	case "j", "down":
		m.scrollFocused(1)
		return m, nil

	case "k", "up":
		m.scrollFocused(-1)
		return m, nil

	case "tab":
		if m.annoOpen && m.annoSurface == SurfacePanel {
			m.activePane = (m.activePane + 1) % 2
		}
		return m, nil

	case "n":
		m.cycleMarker(1)
		m.syncViewport()
		return m, nil

	case "N":
		m.cycleMarker(-1)
		m.syncViewport()
		return m, nil

	case "enter":
		refs := activeMarkers(m.chapterMount)
		if m.markerCursor >= 0 && m.markerCursor < len(refs) {
			return m.openAnnotation(refs[m.markerCursor].key)
		}
		return m, nil

	case "z":
		if m.annoOpen && m.annoSurface == SurfaceInline {
			m.annoExpanded = !m.annoExpanded
			m.syncViewport()
		}
		return m, nil

	case "s":
		m.drainRunning()
		m.syncViewport()
		return m, nil

	case "l":
		return m.cycleLocale()

	case "]", "right":
		if m.chapterIdx < len(m.manifest.Chapters)-1 {
			return m.openChapter(m.chapterIdx + 1)
		}
		return m, nil

	case "[", "left":
		if m.chapterIdx > 0 {
			return m.openChapter(m.chapterIdx - 1)
		}
		return m, nil
	}

	return m, nil
}

// openChapter starts navigation to a chapter. Bumping the generation
// strands any in-flight resolution or tick for the previous chapter.
func (m Model) openChapter(idx int) (tea.Model, tea.Cmd) {
	m.closeAnnotation()
	m.chapterIdx = idx
	m.chapterGen++
	m.chapterSlot.Cancel()

	key := m.manifest.Chapters[idx].Key
	m.statusMsg = "Loading " + key + "..."
	m.log.Info("opening chapter",
		zap.String("key", key),
		zap.String("locale", string(m.locale)))
	return m, m.resolveChapter(key, m.chapterGen)
}

// cycleLocale switches to the next locale, persists the choice, and
// re-resolves whatever is on screen under a fresh generation.
func (m Model) cycleLocale() (tea.Model, tea.Cmd) {
	m.locale = m.locale.Next()
	if err := m.prefs.Set(prefs.KeyLocale, string(m.locale)); err != nil {
		m.log.Warn("persisting locale failed", zap.Error(err))
	}
	m.log.Info("locale switched", zap.String("locale", string(m.locale)))

	if m.showToc {
		return m, nil
	}
	return m.openChapter(m.chapterIdx)
}

// cycleMarker moves the marker cursor through the activated markers.
func (m *Model) cycleMarker(delta int) {
	refs := activeMarkers(m.chapterMount)
	if len(refs) == 0 {
		m.markerCursor = -1
		return
	}
	if m.markerCursor < 0 {
		if delta > 0 {
			m.markerCursor = 0
		} else {
			m.markerCursor = len(refs) - 1
		}
		return
	}
	m.markerCursor = (m.markerCursor + delta + len(refs)) % len(refs)
}

// drainRunning skips the innermost running reveal to completion.
func (m *Model) drainRunning() {
	if s := m.annoSlot.Session(); s != nil && s.Status() == reveal.StatusRunning {
		s.Drain()
		return
	}
	if s := m.chapterSlot.Session(); s != nil && s.Status() == reveal.StatusRunning {
		s.Drain()
	}
}

func (m *Model) scrollFocused(delta int) {
	vp := &m.viewport
	if m.activePane == PanePanel && m.annoOpen && m.annoSurface == SurfacePanel {
		vp = &m.panelVp
	}
	if delta > 0 {
		vp.LineDown(delta)
	} else {
		vp.LineUp(-delta)
	}
}

// ────────────────────────────────────────────────────────────
// Layout + view sync
// ────────────────────────────────────────────────────────────

// layout sizes the viewports for the current terminal and annotation
// surface.
func (m *Model) layout() {
	bodyHeight := m.height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	bodyWidth := m.width
	if m.annoOpen && m.annoSurface == SurfacePanel {
		body, panel := panelWidth(m.width)
		bodyWidth = body
		m.panelVp.Width = panel
		m.panelVp.Height = bodyHeight
	}

	m.viewport.Width = bodyWidth
	m.viewport.Height = bodyHeight
	m.progressBar.Width = clamp(m.width/4, 10, 40)
}

// syncViewport re-renders the mounted trees into the viewports. Called
// after every mutation: reveal steps, marker moves, annotation
// open/close, resize.
func (m *Model) syncViewport() {
	if m.chapterMount == nil {
		return
	}
	m.layout()

	ctx := renderCtx{
		width:        m.viewport.Width - 2,
		selected:     m.selectedMarkerNode(),
		openKey:      m.openAnnotationKey(),
		annoTitle:    m.annoTitle,
		annoExpanded: m.annoExpanded,
	}
	if ctx.width < 10 {
		ctx.width = 10
	}
	if m.annoOpen && m.annoSurface == SurfaceInline && m.annoMount != nil {
		inner := ctx
		inner.width = ctx.width - 2
		if inner.width < 10 {
			inner.width = 10
		}
		ctx.annoBody = renderDocument(m.annoMount, inner)
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(renderDocument(m.chapterMount, ctx))

	// Follow the reveal while the reader sits at the end of the text.
	if s := m.chapterSlot.Session(); s != nil && s.Status() == reveal.StatusRunning && atBottom {
		m.viewport.GotoBottom()
	}

	if m.annoOpen && m.annoSurface == SurfacePanel && m.annoMount != nil {
		pctx := renderCtx{width: m.panelVp.Width - 3}
		if pctx.width < 10 {
			pctx.width = 10
		}
		m.panelVp.SetContent(renderDocument(m.annoMount, pctx))
	}
}

func (m *Model) selectedMarkerNode() *doc.Node {
	refs := activeMarkers(m.chapterMount)
	if m.markerCursor >= 0 && m.markerCursor < len(refs) {
		return refs[m.markerCursor].node
	}
	return nil
}

func (m *Model) openAnnotationKey() string {
	if m.annoOpen {
		return m.annoKey
	}
	return ""
}

// placeholderTree stands in for content that no locale provides.
func placeholderTree(key string) *doc.Node {
	root := doc.NewNode(doc.KindDocument)
	p := doc.NewNode(doc.KindParagraph)
	t := doc.NewNode(doc.KindText)
	t.Text = "No content is available for \"" + key + "\" in any locale."
	p.AppendChild(t)
	root.AppendChild(p)
	return root
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	var body string
	if m.showToc {
		body = renderToc(&m)
	} else if m.annoOpen && m.annoSurface == SurfacePanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), renderPanel(&m))
	} else {
		body = m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
