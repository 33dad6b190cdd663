package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/popup-apps/internal/backend"
	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/overlay"
	tea "github.com/charmbracelet/bubbletea"
)

func TestStaleCatalogLoadIsDropped(t *testing.T) {
	rig := newTestRig(t)
	m := rig.model()
	m.reloadCatalog()
	newest := m.catalogSeq

	stale := catalog.Group([]catalog.AppDescriptor{{Name: "Z", Source: "zeta"}}, catalog.GroupBySource)
	rig.harness.Send(catalogLoadedMsg{seq: newest - 1, catalog: stale})
	if m.Catalog().Has("zeta") {
		t.Fatalf("expected stale load to be ignored")
	}
	if !m.loading {
		t.Fatalf("expected newest load still pending")
	}

	rig.harness.Send(catalogLoadedMsg{seq: newest, catalog: stale})
	if !m.Catalog().Has("zeta") || m.loading {
		t.Fatalf("expected newest load applied")
	}
	if got := len(m.base.Items); got != 1 {
		t.Fatalf("expected one group listed, got %d", got)
	}
}

func TestFailedLoadShowsEmptyDashboard(t *testing.T) {
	rig := newTestRig(t)
	h := rig.harness
	h.Send(key(tea.KeyEnter))

	rig.source.err = errors.New("connection refused")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlR})

	m := rig.model()
	if m.State().Kind() != overlay.Closed {
		t.Fatalf("expected empty catalog to close the folder, got %s", m.State())
	}
	if m.Catalog().Len() != 0 || len(m.base.Items) != 0 {
		t.Fatalf("expected empty catalog after failure")
	}
	if !strings.Contains(m.errMsg, "connection refused") {
		t.Fatalf("expected load error surfaced, got %q", m.errMsg)
	}
	if rig.hub.Listeners() != 0 {
		t.Fatalf("expected router unsubscribed")
	}
}

func TestBackendRefreshRepairsOverlay(t *testing.T) {
	rig := newTestRig(t)
	h := rig.harness
	h.Send(key(tea.KeyEnter))
	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyEnter))

	updated := []catalog.AppDescriptor{
		{Name: "A1", Source: "alpha"},
		{Name: "A2", Source: "alpha", Description: "renamed"},
		{Name: "B1", Source: "beta"},
	}
	h.Send(backendEventMsg{event: backend.Event{Seq: 1, Catalog: catalog.Group(updated, catalog.GroupBySource)}})
	app, ok := rig.state().App()
	if !ok || app.Description != "renamed" {
		t.Fatalf("expected details rebound to fresh descriptor, got %+v", app)
	}

	withoutA2 := []catalog.AppDescriptor{{Name: "A1", Source: "alpha"}, {Name: "B1", Source: "beta"}}
	h.Send(backendEventMsg{event: backend.Event{Seq: 2, Catalog: catalog.Group(withoutA2, catalog.GroupBySource)}})
	if got := rig.state().String(); got != "FolderOpen(alpha)" {
		t.Fatalf("expected details dropped, got %s", got)
	}
	if got := len(rig.model().folder.Items); got != 1 {
		t.Fatalf("expected folder list refreshed to 1 app, got %d", got)
	}

	onlyBeta := []catalog.AppDescriptor{{Name: "B1", Source: "beta"}}
	h.Send(backendEventMsg{event: backend.Event{Seq: 3, Catalog: catalog.Group(onlyBeta, catalog.GroupBySource)}})
	if rig.state().Kind() != overlay.Closed {
		t.Fatalf("expected folder closed when its group vanished, got %s", rig.state())
	}
}

func TestBackendRefreshSupersedesPendingLoad(t *testing.T) {
	rig := newTestRig(t)
	m := rig.model()
	m.reloadCatalog()
	pending := m.catalogSeq

	fresh := catalog.Group([]catalog.AppDescriptor{{Name: "N", Source: "new"}}, catalog.GroupBySource)
	rig.harness.Send(backendEventMsg{event: backend.Event{Seq: 1, Catalog: fresh}})
	rig.harness.Send(catalogLoadedMsg{seq: pending, catalog: testCatalog()})
	if !m.Catalog().Has("new") || m.Catalog().Has("alpha") {
		t.Fatalf("expected backend refresh to win over the older load")
	}
}

func TestBackendRefreshOutOfOrderIsDropped(t *testing.T) {
	rig := newTestRig(t)
	newer := catalog.Group([]catalog.AppDescriptor{{Name: "N", Source: "new"}}, catalog.GroupBySource)
	older := catalog.Group([]catalog.AppDescriptor{{Name: "O", Source: "old"}}, catalog.GroupBySource)
	rig.harness.Send(backendEventMsg{event: backend.Event{Seq: 2, Catalog: newer}})
	rig.harness.Send(backendEventMsg{event: backend.Event{Seq: 1, Catalog: older}})
	m := rig.model()
	if !m.Catalog().Has("new") || m.Catalog().Has("old") {
		t.Fatalf("expected refresh #1 dropped after #2, groups=%v", m.Catalog().Keys())
	}
	rig.harness.Send(backendEventMsg{event: backend.Event{Seq: 2, Err: errors.New("late")}})
	if m.backendErr != "" {
		t.Fatalf("expected repeated refresh ignored, got error %q", m.backendErr)
	}
}

func TestBackendErrorKeepsCatalog(t *testing.T) {
	rig := newTestRig(t)
	rig.harness.Send(backendEventMsg{event: backend.Event{Seq: 1, Err: errors.New("timeout")}})
	m := rig.model()
	if m.Catalog().Len() != 2 {
		t.Fatalf("expected catalog kept on refresh error")
	}
	if m.backendErr != "timeout" {
		t.Fatalf("expected refresh error recorded, got %q", m.backendErr)
	}
	if !strings.Contains(rig.harness.View(), "Refresh failed") {
		t.Fatalf("expected refresh error on screen")
	}
}

func TestBackendDoneStopsWaiting(t *testing.T) {
	rig := newTestRig(t)
	m := rig.model()
	if cmd := m.handleBackendDoneMsg(backendDoneMsg{}); cmd != nil {
		t.Fatalf("expected no follow-up command")
	}
	if m.backend != nil {
		t.Fatalf("expected watcher cleared")
	}
}
