package ui

import (
	"fmt"

	"github.com/atomicstack/popup-apps/internal/logging/events"
	"github.com/atomicstack/popup-apps/internal/overlay"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "ctrl+r":
		if m.loading {
			return nil
		}
		return m.reloadCatalog()
	case "up":
		m.moveCursor((*level).MoveCursorUp)
	case "down":
		m.moveCursor((*level).MoveCursorDown)
	case "pgup":
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageUp(m.maxVisibleFor(l)) })
	case "pgdown":
		m.moveCursor(func(l *level) bool { return l.MoveCursorPageDown(m.maxVisibleFor(l)) })
	case "home":
		m.moveCursor((*level).MoveCursorHome)
	case "end":
		m.moveCursor((*level).MoveCursorEnd)
	}
	return nil
}

// handleEscapeKey dismisses the topmost layer. With nothing open it quits.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.machine.Dismiss() == overlay.LayerNone {
		return m.quit()
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

// handleEnterKey activates the item under the cursor of the topmost layer:
// a group opens its folder, an app opens its details, and the details layer
// launches its app.
func (m *Model) handleEnterKey() tea.Cmd {
	state := m.machine.State()
	switch state.Kind() {
	case overlay.Closed:
		item, ok := m.base.Current()
		if !ok {
			return nil
		}
		events.UI.Enter(m.base.ID, item.ID, item.Label)
		return m.openGroup(item.ID)
	case overlay.FolderOpen:
		item, ok := m.folder.Current()
		if !ok {
			return nil
		}
		events.UI.Enter(m.folder.ID, item.ID, item.Label)
		return m.selectApp(item.ID)
	case overlay.BothOpen:
		app, _ := state.App()
		events.UI.Enter(zoneLaunch, app.Name, app.Name)
		return m.launchApp(app)
	}
	return nil
}

func (m *Model) openGroup(group string) tea.Cmd {
	if !m.machine.OpenFolder(group) {
		if m.machine.Catalog().Count(group) == 0 {
			m.setInfo(fmt.Sprintf("%s has no apps.", group))
		}
		return nil
	}
	before := m.base.FilterCursorPos()
	m.base.SetFilter("", 0)
	m.noteFilterCursorChange(m.base, before)
	if idx := m.base.IndexOf(group); idx >= 0 {
		m.base.SetCursor(idx)
	}
	m.syncViewport(m.base)
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) selectApp(name string) tea.Cmd {
	group, ok := m.machine.State().Group()
	if !ok {
		return nil
	}
	app, ok := m.machine.Catalog().Find(group, name)
	if !ok {
		return nil
	}
	if m.machine.SelectApp(app) {
		m.errMsg = ""
		m.forceClearInfo()
	}
	return nil
}

func (m *Model) moveCursor(move func(*level) bool) {
	current := m.activeLevel()
	if current == nil {
		return
	}
	if move(current) {
		events.UI.Cursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleFor(l))
}

func (m *Model) maxVisibleFor(l *level) int {
	if l != nil && l == m.folder {
		return m.folderRows()
	}
	return m.maxVisibleItems()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncViewport(m.base)
	m.syncViewport(m.folder)
	return nil
}
