// Package overlay implements the two-layer navigation used by the apps
// dashboard: a folder layer listing the apps of one group and a details layer
// describing one of those apps.
//
// State is a tagged union (Closed, FolderOpen, BothOpen) so that a details
// layer without a folder cannot be expressed. All transitions are synchronous;
// preconditions that do not hold turn a transition into a no-op.
package overlay

import (
	"fmt"

	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/logging/events"
)

// Kind enumerates the reachable overlay combinations.
type Kind int

const (
	Closed Kind = iota
	FolderOpen
	BothOpen
)

func (k Kind) String() string {
	switch k {
	case Closed:
		return "closed"
	case FolderOpen:
		return "folder-open"
	case BothOpen:
		return "both-open"
	default:
		return "unknown"
	}
}

// Layer identifies one overlay surface.
type Layer int

const (
	LayerNone Layer = iota
	LayerFolder
	LayerDetails
)

func (l Layer) String() string {
	switch l {
	case LayerFolder:
		return "folder"
	case LayerDetails:
		return "details"
	default:
		return "none"
	}
}

// State is an immutable snapshot of the overlay.
type State struct {
	kind  Kind
	group string
	app   catalog.AppDescriptor
}

// Kind returns which combination of layers is visible.
func (s State) Kind() Kind { return s.kind }

// Group returns the open folder's group key.
func (s State) Group() (string, bool) {
	if s.kind == Closed {
		return "", false
	}
	return s.group, true
}

// App returns the app shown in the details layer.
func (s State) App() (catalog.AppDescriptor, bool) {
	if s.kind != BothOpen {
		return catalog.AppDescriptor{}, false
	}
	return s.app, true
}

// IsOpen reports whether any layer is visible.
func (s State) IsOpen() bool { return s.kind != Closed }

// Top returns the topmost visible layer.
func (s State) Top() Layer {
	switch s.kind {
	case BothOpen:
		return LayerDetails
	case FolderOpen:
		return LayerFolder
	default:
		return LayerNone
	}
}

func (s State) String() string {
	switch s.kind {
	case FolderOpen:
		return fmt.Sprintf("FolderOpen(%s)", s.group)
	case BothOpen:
		return fmt.Sprintf("BothOpen(%s, %s)", s.group, s.app.Name)
	default:
		return "Closed"
	}
}

func closedState() State { return State{} }

func folderState(group string) State { return State{kind: FolderOpen, group: group} }

func bothState(group string, app catalog.AppDescriptor) State {
	return State{kind: BothOpen, group: group, app: app}
}

// ChangeFunc observes transitions. prev and next always differ.
type ChangeFunc func(prev, next State)

// Machine owns the overlay state for one dashboard view.
type Machine struct {
	state     State
	catalog   catalog.Grouped
	observers []ChangeFunc
}

// NewMachine returns a closed machine over the given catalog.
func NewMachine(c catalog.Grouped) *Machine {
	return &Machine{catalog: c}
}

// State returns the current snapshot.
func (m *Machine) State() State { return m.state }

// Catalog returns the catalog transitions are validated against.
func (m *Machine) Catalog() catalog.Grouped { return m.catalog }

// OnChange registers fn to run after every state change.
func (m *Machine) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}
	m.observers = append(m.observers, fn)
}

// OpenFolder shows the folder layer for group and clears any selected app.
// Opening the already-open folder, an unknown group, or an empty group is a
// no-op.
func (m *Machine) OpenFolder(group string) bool {
	const op = "openFolder"
	if !m.catalog.Has(group) {
		events.Overlay.Rejected(op, events.OverlayReasonUnknownGroup)
		return false
	}
	if m.catalog.Count(group) == 0 {
		events.Overlay.Rejected(op, events.OverlayReasonEmptyGroup)
		return false
	}
	if m.state.kind == FolderOpen && m.state.group == group {
		events.Overlay.Rejected(op, events.OverlayReasonAlreadyOpen)
		return false
	}
	return m.transition(op, folderState(group))
}

// SelectApp shows the details layer for app, which must belong to the open
// folder.
func (m *Machine) SelectApp(app catalog.AppDescriptor) bool {
	const op = "selectApp"
	group, ok := m.state.Group()
	if !ok {
		events.Overlay.Rejected(op, events.OverlayReasonNoFolder)
		return false
	}
	fresh, ok := m.catalog.Find(group, app.Name)
	if !ok || !fresh.SameApp(app) {
		events.Overlay.Rejected(op, events.OverlayReasonForeignApp)
		return false
	}
	return m.transition(op, bothState(group, fresh))
}

// CloseDetails hides the details layer and keeps the folder open.
func (m *Machine) CloseDetails() bool {
	const op = "closeDetails"
	if m.state.kind != BothOpen {
		events.Overlay.Rejected(op, events.OverlayReasonNoDetails)
		return false
	}
	return m.transition(op, folderState(m.state.group))
}

// CloseFolder hides both layers.
func (m *Machine) CloseFolder() bool {
	const op = "closeFolder"
	if m.state.kind == Closed {
		events.Overlay.Rejected(op, events.OverlayReasonClosed)
		return false
	}
	return m.transition(op, closedState())
}

// Dismiss applies one dismissal signal. It closes at most one layer, the
// details layer taking precedence over the folder layer, and reports which
// layer it closed.
func (m *Machine) Dismiss() Layer {
	var closed Layer
	switch m.state.kind {
	case BothOpen:
		if m.CloseDetails() {
			closed = LayerDetails
		}
	case FolderOpen:
		if m.CloseFolder() {
			closed = LayerFolder
		}
	}
	events.Overlay.Dismiss(closed.String())
	return closed
}

// SetCatalog replaces the catalog and repairs the state so the invariants
// still hold: a folder whose group vanished or emptied closes, a selected app
// that left its group drops the details layer, and a surviving app is rebound
// to its fresh descriptor.
func (m *Machine) SetCatalog(c catalog.Grouped) bool {
	m.catalog = c
	switch m.state.kind {
	case FolderOpen:
		if c.Count(m.state.group) == 0 {
			return m.transition("setCatalog", closedState())
		}
	case BothOpen:
		if c.Count(m.state.group) == 0 {
			return m.transition("setCatalog", closedState())
		}
		fresh, ok := c.Find(m.state.group, m.state.app.Name)
		if !ok {
			return m.transition("setCatalog", folderState(m.state.group))
		}
		if fresh != m.state.app {
			return m.transition("setCatalog", bothState(m.state.group, fresh))
		}
	}
	return false
}

func (m *Machine) transition(op string, next State) bool {
	prev := m.state
	if prev == next {
		return false
	}
	m.state = next
	events.Overlay.Transition(op, prev.String(), next.String())
	for _, fn := range m.observers {
		fn(prev, next)
	}
	return true
}
