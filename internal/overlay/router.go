package overlay

import (
	"sync"

	"github.com/atomicstack/popup-apps/internal/logging/events"
)

// Region ids the router tests pointer events against.
const (
	RegionFolder  = "overlay:folder"
	RegionDetails = "overlay:details"
)

// PointerEvent is a pointer press in screen cells.
type PointerEvent struct {
	X int
	Y int
}

// HitTester reports whether ev falls inside the rendered region id.
type HitTester interface {
	Hit(id string, ev PointerEvent) bool
}

// HitFunc adapts a function to HitTester.
type HitFunc func(id string, ev PointerEvent) bool

func (f HitFunc) Hit(id string, ev PointerEvent) bool { return f(id, ev) }

// PointerHub is the process-wide pointer stream. Listeners may subscribe or
// unsubscribe from inside a delivery.
type PointerHub struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(PointerEvent)
	order     []int
}

// NewPointerHub returns an empty hub.
func NewPointerHub() *PointerHub {
	return &PointerHub{listeners: make(map[int]func(PointerEvent))}
}

// Subscribe registers fn and returns a cancel function. Cancelling twice is
// harmless.
func (h *PointerHub) Subscribe(fn func(PointerEvent)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.order = append(h.order, id)
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.listeners[id]; !ok {
			return
		}
		delete(h.listeners, id)
		for i, v := range h.order {
			if v == id {
				h.order = append(h.order[:i], h.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers ev to the listeners registered when Publish was called,
// skipping any that unsubscribed during the delivery.
func (h *PointerHub) Publish(ev PointerEvent) {
	h.mu.Lock()
	ids := append([]int(nil), h.order...)
	h.mu.Unlock()
	for _, id := range ids {
		h.mu.Lock()
		fn, ok := h.listeners[id]
		h.mu.Unlock()
		if ok {
			fn(ev)
		}
	}
}

// Listeners returns the number of active subscriptions.
func (h *PointerHub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// Router turns pointer presses outside the visible overlay content into close
// transitions. It listens on the hub only while a layer is open.
type Router struct {
	machine *Machine
	hub     *PointerHub
	hits    HitTester
	cancel  func()
	closed  bool
}

// NewRouter wires a router to m and hub. The subscription follows the
// machine: it is taken when the machine leaves Closed and dropped when it
// returns.
func NewRouter(m *Machine, hub *PointerHub, hits HitTester) *Router {
	r := &Router{machine: m, hub: hub, hits: hits}
	m.OnChange(func(prev, next State) { r.sync(next) })
	r.sync(m.State())
	return r
}

// Active reports whether the router currently listens on the hub.
func (r *Router) Active() bool { return r.cancel != nil }

// Close drops the subscription for good. Later state changes do not
// resubscribe.
func (r *Router) Close() {
	r.closed = true
	r.unsubscribe()
}

// Route decides the effect of one pointer press and applies it. Only the
// topmost layer is evaluated: a press outside the details content closes the
// details layer and is consumed there.
func (r *Router) Route(ev PointerEvent) Layer {
	state := r.machine.State()
	outcome := LayerNone
	switch state.Kind() {
	case BothOpen:
		if !r.hit(RegionDetails, ev) && r.machine.CloseDetails() {
			outcome = LayerDetails
		}
	case FolderOpen:
		if !r.hit(RegionFolder, ev) && r.machine.CloseFolder() {
			outcome = LayerFolder
		}
	}
	events.Overlay.Route(ev.X, ev.Y, outcome.String())
	return outcome
}

func (r *Router) hit(id string, ev PointerEvent) bool {
	if r.hits == nil {
		return false
	}
	return r.hits.Hit(id, ev)
}

func (r *Router) sync(s State) {
	if r.closed {
		return
	}
	if s.IsOpen() {
		r.subscribe()
		return
	}
	r.unsubscribe()
}

func (r *Router) subscribe() {
	if r.cancel != nil || r.hub == nil {
		return
	}
	r.cancel = r.hub.Subscribe(func(ev PointerEvent) { r.Route(ev) })
	events.Overlay.Subscribe(r.hub.Listeners())
}

func (r *Router) unsubscribe() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	r.cancel = nil
	events.Overlay.Unsubscribe(r.hub.Listeners())
}
