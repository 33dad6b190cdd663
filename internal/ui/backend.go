package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/popup-apps/internal/backend"
	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/logging"
	"github.com/atomicstack/popup-apps/internal/logging/events"
	"github.com/atomicstack/popup-apps/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// catalogLoadedMsg carries the outcome of one catalog load.
type catalogLoadedMsg struct {
	seq     int
	catalog catalog.Grouped
	err     error
}

// reloadCatalog requests a fresh catalog. A load already in flight is left
// to finish; it is ignored once it reports back because its sequence number
// is older.
func (m *Model) reloadCatalog() tea.Cmd {
	if m.source == nil {
		return nil
	}
	m.catalogSeq++
	seq := m.catalogSeq
	m.loading = true
	events.Catalog.Request(seq, m.backendURL)
	source := m.source
	load := m.bus.Execute(command.Request{
		ID:    "catalog:load",
		Label: fmt.Sprintf("load #%d", seq),
		Handler: func(ctx context.Context) tea.Msg {
			data, err := source.Load(ctx)
			return catalogLoadedMsg{seq: seq, catalog: data, err: err}
		},
	})
	return tea.Batch(load, m.startSpinner())
}

func (m *Model) handleCatalogLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(catalogLoadedMsg)
	if !ok {
		return nil
	}
	m.applyCatalog(loaded.seq, loaded.catalog, loaded.err)
	return nil
}

// applyCatalog installs a loaded catalog unless a newer load has been
// requested since. Failures install the empty catalog they carry so the
// dashboard never shows data the backend no longer vouches for.
func (m *Model) applyCatalog(seq int, data catalog.Grouped, err error) {
	if seq < m.catalogSeq {
		events.Catalog.Stale(seq, m.catalogSeq)
		return
	}
	m.loading = false
	m.loaded = true
	if err != nil {
		logging.Error(err)
		events.Catalog.Failed(seq, err)
		data = catalog.Grouped{}
	} else {
		events.Catalog.Loaded(seq, data.Len(), data.Total())
	}
	m.machine.SetCatalog(data)
	m.base.UpdateItems(groupItems(data))
	m.syncViewport(m.base)
	if m.folder != nil {
		if group, ok := m.machine.State().Group(); ok {
			m.folder.UpdateItems(appItems(data.Apps(group)))
			m.syncViewport(m.folder)
		}
	}
	if err != nil {
		m.errMsg = fmt.Sprintf("Failed to load apps: %v", err)
		return
	}
	if m.errMsg != "" && m.launchesInFlight() == 0 {
		m.errMsg = ""
	}
	if data.Len() == 0 {
		m.setInfo("No apps available.")
	}
}

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent treats a background refresh as the newest load. A failed
// refresh keeps the catalog on screen and only records the error. Refreshes
// that are not newer than the last one seen are dropped.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Seq <= m.refreshSeq {
		events.Catalog.Stale(evt.Seq, m.refreshSeq)
		return
	}
	m.refreshSeq = evt.Seq
	if evt.Err != nil {
		logging.Error(evt.Err)
		m.backendErr = evt.Err.Error()
		return
	}
	m.backendErr = ""
	m.catalogSeq++
	m.applyCatalog(m.catalogSeq, evt.Catalog, nil)
}
