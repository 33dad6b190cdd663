package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rect struct{ x, y, w, h int }

func (r rect) contains(ev PointerEvent) bool {
	return ev.X >= r.x && ev.X < r.x+r.w && ev.Y >= r.y && ev.Y < r.y+r.h
}

// fakeRegions mirrors the dashboard layout: the details box sits inside the
// folder box.
func fakeRegions() HitFunc {
	regions := map[string]rect{
		RegionFolder:  {x: 10, y: 5, w: 40, h: 12},
		RegionDetails: {x: 20, y: 7, w: 20, h: 6},
	}
	return func(id string, ev PointerEvent) bool {
		r, ok := regions[id]
		return ok && r.contains(ev)
	}
}

var (
	outside       = PointerEvent{X: 0, Y: 0}
	insideFolder  = PointerEvent{X: 12, Y: 6}
	insideDetails = PointerEvent{X: 25, Y: 8}
)

func TestRouterSubscribesOnlyWhileOpen(t *testing.T) {
	hub := NewPointerHub()
	m := NewMachine(testCatalog())
	r := NewRouter(m, hub, fakeRegions())

	assert.False(t, r.Active())
	assert.Equal(t, 0, hub.Listeners())

	require.True(t, m.OpenFolder("alpha"))
	assert.True(t, r.Active())
	assert.Equal(t, 1, hub.Listeners())

	require.True(t, m.SelectApp(a1))
	assert.Equal(t, 1, hub.Listeners(), "no second subscription while already open")

	require.True(t, m.CloseFolder())
	assert.False(t, r.Active())
	assert.Equal(t, 0, hub.Listeners())
}

func TestRouterDetailsTakesPrecedence(t *testing.T) {
	hub := NewPointerHub()
	m := NewMachine(testCatalog())
	NewRouter(m, hub, fakeRegions())
	require.True(t, m.OpenFolder("alpha"))
	require.True(t, m.SelectApp(a2))

	// Outside both layers: only the details layer closes.
	hub.Publish(outside)
	assert.Equal(t, "FolderOpen(alpha)", m.State().String())

	// Next press outside closes the folder and the router detaches.
	hub.Publish(outside)
	assert.Equal(t, Closed, m.State().Kind())
	assert.Equal(t, 0, hub.Listeners())
}

func TestRouterClickInsideFolderButOutsideDetailsClosesDetailsOnly(t *testing.T) {
	hub := NewPointerHub()
	m := NewMachine(testCatalog())
	NewRouter(m, hub, fakeRegions())
	require.True(t, m.OpenFolder("alpha"))
	require.True(t, m.SelectApp(a1))

	hub.Publish(insideFolder)
	assert.Equal(t, "FolderOpen(alpha)", m.State().String())
}

func TestRouterIgnoresPressesInsideTopLayer(t *testing.T) {
	hub := NewPointerHub()
	m := NewMachine(testCatalog())
	NewRouter(m, hub, fakeRegions())

	require.True(t, m.OpenFolder("alpha"))
	hub.Publish(insideFolder)
	assert.Equal(t, "FolderOpen(alpha)", m.State().String())

	require.True(t, m.SelectApp(a1))
	hub.Publish(insideDetails)
	assert.Equal(t, "BothOpen(alpha, A1)", m.State().String())
}

func TestRouterRouteWhenClosedIsNoOp(t *testing.T) {
	m := NewMachine(testCatalog())
	r := NewRouter(m, NewPointerHub(), fakeRegions())
	assert.Equal(t, LayerNone, r.Route(outside))
	assert.Equal(t, Closed, m.State().Kind())
}

func TestRouterNilHitTesterTreatsEverythingAsOutside(t *testing.T) {
	m := NewMachine(testCatalog())
	r := NewRouter(m, NewPointerHub(), nil)
	require.True(t, m.OpenFolder("beta"))
	assert.Equal(t, LayerFolder, r.Route(insideFolder))
}

func TestRouterCloseDetachesPermanently(t *testing.T) {
	hub := NewPointerHub()
	m := NewMachine(testCatalog())
	r := NewRouter(m, hub, fakeRegions())
	require.True(t, m.OpenFolder("alpha"))
	require.Equal(t, 1, hub.Listeners())

	r.Close()
	assert.Equal(t, 0, hub.Listeners())

	require.True(t, m.CloseFolder())
	require.True(t, m.OpenFolder("beta"))
	assert.Equal(t, 0, hub.Listeners(), "closed router must not resubscribe")
}

func TestRoutersFromRemountedViewsDoNotLeak(t *testing.T) {
	hub := NewPointerHub()
	for i := 0; i < 3; i++ {
		m := NewMachine(testCatalog())
		r := NewRouter(m, hub, fakeRegions())
		require.True(t, m.OpenFolder("alpha"))
		r.Close()
	}
	assert.Equal(t, 0, hub.Listeners())
}

func TestPointerHubUnsubscribeDuringPublish(t *testing.T) {
	hub := NewPointerHub()
	var calls []string
	var cancelSecond func()
	hub.Subscribe(func(PointerEvent) {
		calls = append(calls, "first")
		cancelSecond()
	})
	cancelSecond = hub.Subscribe(func(PointerEvent) { calls = append(calls, "second") })

	hub.Publish(outside)
	assert.Equal(t, []string{"first"}, calls)
	assert.Equal(t, 1, hub.Listeners())

	cancelSecond()
	assert.Equal(t, 1, hub.Listeners())
}
