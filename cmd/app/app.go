package main

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"threadview/config"
	"threadview/internal/layout"
	"threadview/internal/logging"
	"threadview/internal/thread"
	threadui "threadview/internal/tui/thread"
)

// appModel hosts the thread component: window sizing, quit keys and a demo
// toggle for the typing indicator.
type appModel struct {
	thread *threadui.Model
	typing bool
	ready  bool
}

func newAppModel(src thread.Source, engine *layout.Engine, styles config.Styles, log *logging.Logger) *appModel {
	return &appModel{
		thread: threadui.New(src, engine, threadui.NewStyles(styles), log.Sub("thread")),
	}
}

func (m *appModel) Init() tea.Cmd {
	return m.thread.Init()
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.thread.SetSize(msg.Width, msg.Height)
		m.ready = true
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "t":
			m.typing = !m.typing
			var cmd tea.Cmd
			m.thread, cmd = m.thread.Update(threadui.SetTypingMsg{Typing: m.typing})
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.thread, cmd = m.thread.Update(msg)
	return m, cmd
}

func (m *appModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.thread.View()
}
