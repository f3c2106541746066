// Package thread is the presentation layer over the layout engine: a
// bubbletea component that keeps a scrollable message viewport in sync with
// the message source, applying reconciliation plans with the least visual
// work: full rebuilds only for structural changes, in-place block re-renders
// for content edits, and nothing otherwise.
package thread

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"

	"threadview/config"
	"threadview/internal/layout"
	"threadview/internal/logging"
	"threadview/internal/reconcile"
	"threadview/internal/thread"
)

// ReloadMsg asks the component to re-query the source and reconcile.
type ReloadMsg struct{}

// SetTypingMsg toggles the typing-indicator entry.
type SetTypingMsg struct {
	Typing bool
}

// StylesReloadedMsg carries a freshly loaded style configuration. The config
// watcher goroutine sends it through the program so cache invalidation stays
// on the update loop.
type StylesReloadedMsg struct {
	Styles config.Styles
}

// typingTickMsg advances the typing animation.
type typingTickMsg struct{}

const typingTickInterval = 400 * time.Millisecond

// Model renders a message thread.
type Model struct {
	w, h   int
	vp     viewport.Model
	inited bool

	src    thread.Source
	engine *layout.Engine
	cache  *SegmentCache
	render *Renderer
	cells  *cellRenderer

	prev   []thread.Entry
	typing bool

	ensureVisibleIdx int
	log              *logging.Logger
}

// New builds the thread component. The engine must share the same source.
func New(src thread.Source, engine *layout.Engine, styles Styles, log *logging.Logger) *Model {
	cache := NewSegmentCache()
	return &Model{
		src:    src,
		engine: engine,
		cache:  cache,
		render: NewRenderer(cache),
		cells: &cellRenderer{
			styles: styles,
			isMine: src.IsMine,
		},
		ensureVisibleIdx: -1,
		log:              log,
	}
}

func (m *Model) initIfNeeded() {
	if m.inited {
		return
	}
	m.vp = viewport.New()
	m.vp.MouseWheelEnabled = true
	m.vp.MouseWheelDelta = 5
	m.vp.SoftWrap = false
	m.vp.FillHeight = true
	m.inited = true
}

// SetSize resizes the component. Width changes invalidate all geometry.
func (m *Model) SetSize(w, h int) {
	m.initIfNeeded()
	m.w, m.h = w, h
	m.vp.SetWidth(w)
	m.vp.SetHeight(h)
	if m.engine.Width() != w {
		m.engine.SetWidth(w)
		m.cache.MarkDirtyAll()
	}
}

// Init starts the reload cycle.
func (m *Model) Init() tea.Cmd {
	m.initIfNeeded()
	return func() tea.Msg { return ReloadMsg{} }
}

// Update handles reloads, typing toggles, style reloads and scrolling.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	m.initIfNeeded()

	switch msg := msg.(type) {
	case ReloadMsg:
		m.reconcileNow()
		return m, nil

	case SetTypingMsg:
		if m.typing == msg.Typing {
			return m, nil
		}
		m.typing = msg.Typing
		m.reconcileNow()
		if m.typing {
			return m, m.typingTick()
		}
		return m, nil

	case typingTickMsg:
		if !m.typing {
			return m, nil
		}
		m.cells.typingFrame++
		if idx := m.typingIndex(); idx >= 0 {
			m.cache.MarkDirty(idx, m.engine.Len())
		}
		return m, m.typingTick()

	case StylesReloadedMsg:
		m.engine.SetSizing(msg.Styles.Sizing)
		m.cells.styles = NewStyles(msg.Styles)
		m.cache.MarkDirtyAll()
		m.log.Info().Msg("styles reloaded")
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders the viewport.
func (m *Model) View() string {
	m.initIfNeeded()
	wasAtBottom := m.vp.AtBottom()

	m.cache.ProcessDirty(m.engine.Len(), m.renderBlock)

	view, scrollToBottom := m.render.Render(&m.vp, wasAtBottom, m.ensureVisibleIdx)
	if scrollToBottom {
		m.vp.GotoBottom()
		view = m.vp.View()
	}
	m.ensureVisibleIdx = -1
	return view
}

// reconcileNow re-queries the source, classifies the change against the
// previous snapshot and applies the minimal plan.
func (m *Model) reconcileNow() {
	next := thread.Entries(m.src, m.typing)
	plan := reconcile.Diff(m.prev, next)

	switch plan.Kind {
	case reconcile.Structural:
		m.engine.SetEntries(plan.Entries)
		m.cache.MarkDirtyAll()
		m.ensureVisibleIdx = len(plan.Entries) - 1
		m.log.Debug().Int("entries", len(plan.Entries)).Msg("structural update")

	case reconcile.Refresh:
		m.engine.SetEntries(plan.Entries)
		for i, idx := range plan.RefreshIndices {
			m.engine.Invalidate(plan.RefreshIDs[i])
			m.cache.MarkDirty(idx, len(plan.Entries))
		}
		m.log.Debug().Ints("indices", plan.RefreshIndices).Msg("selective refresh")

	case reconcile.NoOp:
	}

	m.prev = next
}

// renderBlock produces the content and height of one entry cell, with the
// engine as the geometry authority.
func (m *Model) renderBlock(idx int) (string, int) {
	entries := m.engine.Entries()
	if idx < 0 || idx >= len(entries) {
		return "", 0
	}
	attrs, err := m.engine.AttributesAt(idx)
	if err != nil {
		m.log.Error().Err(err).Int("index", idx).Msg("layout failed")
		return "", 0
	}
	return m.cells.render(entries[idx], attrs), attrs.CellSize.Height
}

func (m *Model) typingIndex() int {
	entries := m.engine.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Typing {
			return i
		}
	}
	return -1
}

func (m *Model) typingTick() tea.Cmd {
	return tea.Tick(typingTickInterval, func(time.Time) tea.Msg {
		return typingTickMsg{}
	})
}
