package ui

import (
	"github.com/atomicstack/popup-apps/internal/logging/events"
	"github.com/atomicstack/popup-apps/internal/overlay"
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouseMsg routes pointer input. The wheel moves the cursor of the
// active list. A left press is first offered to the tiles of the topmost
// layer; a press no tile consumes goes to the pointer hub, where the overlay
// router decides whether it dismisses a layer.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor((*level).MoveCursorUp)
		return nil
	case tea.MouseButtonWheelDown:
		m.moveCursor((*level).MoveCursorDown)
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	pe := overlay.PointerEvent{X: ev.X, Y: ev.Y}
	if target, cmd, ok := m.clickTile(pe); ok {
		events.Pointer.Consumed(target, pe.X, pe.Y)
		return cmd
	}
	events.Pointer.Published(pe.X, pe.Y, m.hub.Listeners())
	m.hub.Publish(pe)
	return nil
}

// clickTile activates the tile under pe, if any. Only the topmost layer's
// tiles are live; the layers beneath are covered.
func (m *Model) clickTile(pe overlay.PointerEvent) (string, tea.Cmd, bool) {
	switch m.machine.State().Kind() {
	case overlay.Closed:
		items, start := m.base.Visible(m.maxVisibleItems())
		for i, item := range items {
			id := groupZoneID(item.ID)
			if m.regions.Hit(id, pe) {
				m.base.SetCursor(start + i)
				return id, m.openGroup(item.ID), true
			}
		}
	case overlay.FolderOpen:
		items, start := m.folder.Visible(m.folderRows())
		for i, item := range items {
			id := appZoneID(item.ID)
			if m.regions.Hit(id, pe) {
				m.folder.SetCursor(start + i)
				return id, m.selectApp(item.ID), true
			}
		}
	case overlay.BothOpen:
		if m.regions.Hit(zoneLaunch, pe) {
			app, _ := m.machine.State().App()
			return zoneLaunch, m.launchApp(app), true
		}
	}
	return "", nil, false
}
