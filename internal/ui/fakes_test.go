package ui

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/launch"
	"github.com/atomicstack/popup-apps/internal/overlay"
)

var errConnRefused = errors.New("connection refused")

var testApps = []catalog.AppDescriptor{
	{Name: "A1", Source: "alpha", Description: "first alpha app"},
	{Name: "A2", Source: "alpha", Description: "second alpha app", Category: "tools", Folder: "a2", Icon: "icons/a2.png"},
	{Name: "B1", Source: "beta"},
}

func testCatalog() catalog.Grouped {
	return catalog.Group(testApps, catalog.GroupBySource)
}

type fakeSource struct {
	mu    sync.Mutex
	data  catalog.Grouped
	err   error
	calls int
}

func (f *fakeSource) Load(ctx context.Context) (catalog.Grouped, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return catalog.Grouped{}, f.err
	}
	return f.data, nil
}

type fakeLauncher struct {
	mu       sync.Mutex
	launched []string
	url      string
	err      error
}

func (f *fakeLauncher) Launch(ctx context.Context, app catalog.AppDescriptor) (launch.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launched = append(f.launched, app.Name)
	if f.err != nil {
		return launch.Result{}, f.err
	}
	return launch.Result{URL: f.url}, nil
}

type fakeOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (f *fakeOpener) Open(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, url)
	return f.err
}

type rect struct {
	x0, y0, x1, y1 int
}

// fakeRegions places regions at fixed rectangles and records which ids the
// last rendered frame marked.
type fakeRegions struct {
	rects   map[string]rect
	pending map[string]bool
	marked  map[string]bool
}

func newFakeRegions() *fakeRegions {
	return &fakeRegions{rects: map[string]rect{}, pending: map[string]bool{}, marked: map[string]bool{}}
}

func (f *fakeRegions) Mark(id, s string) string {
	f.pending[id] = true
	return s
}

func (f *fakeRegions) Scan(s string) string {
	f.marked = f.pending
	f.pending = map[string]bool{}
	return s
}

func (f *fakeRegions) Hit(id string, ev overlay.PointerEvent) bool {
	r, ok := f.rects[id]
	if !ok {
		return false
	}
	return ev.X >= r.x0 && ev.X <= r.x1 && ev.Y >= r.y0 && ev.Y <= r.y1
}

type testRig struct {
	harness  *Harness
	source   *fakeSource
	launcher *fakeLauncher
	opener   *fakeOpener
	regions  *fakeRegions
	hub      *overlay.PointerHub
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	rig := &testRig{
		source:   &fakeSource{data: testCatalog()},
		launcher: &fakeLauncher{url: "http://localhost:6001/"},
		opener:   &fakeOpener{},
		regions:  newFakeRegions(),
		hub:      overlay.NewPointerHub(),
	}
	model := NewModel(Options{
		Width:      80,
		Height:     24,
		BackendURL: "http://localhost:5000",
		Source:     rig.source,
		Launcher:   rig.launcher,
		Opener:     rig.opener,
		Hub:        rig.hub,
		Regions:    rig.regions,
	})
	rig.harness = NewHarness(model)
	rig.harness.Init()
	if got := rig.model().Catalog().Len(); got != 2 {
		t.Fatalf("expected 2 groups after init, got %d", got)
	}
	return rig
}

func (r *testRig) model() *Model {
	return r.harness.Model()
}

func (r *testRig) state() overlay.State {
	return r.harness.Model().State()
}
