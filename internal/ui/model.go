package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/popup-apps/internal/backend"
	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/launch"
	"github.com/atomicstack/popup-apps/internal/logging/events"
	"github.com/atomicstack/popup-apps/internal/overlay"
	"github.com/atomicstack/popup-apps/internal/theme"
	"github.com/atomicstack/popup-apps/internal/ui/command"
	uistate "github.com/atomicstack/popup-apps/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

type level = uistate.Level

const (
	headerSeparator = "→"
	rootTitle       = "apps"
	baseLevelID     = "folders"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// BackendURL is used to resolve relative icon paths.
	BackendURL string

	Source   catalog.Source
	Launcher launch.Launcher
	Opener   launch.Opener
	Watcher  *backend.Watcher

	// Hub defaults to a private hub; Regions defaults to a bubblezone
	// manager.
	Hub     *overlay.PointerHub
	Regions Regions
}

// Model implements the Bubble Tea model for the apps dashboard.
type Model struct {
	base   *level
	folder *level

	machine *overlay.Machine
	hub     *overlay.PointerHub
	router  *overlay.Router
	regions Regions

	source     catalog.Source
	launcher   launch.Launcher
	opener     launch.Opener
	backend    *backend.Watcher
	backendURL string
	bus        *command.Bus

	catalogSeq int
	refreshSeq int
	loading    bool
	loaded     bool
	launching  map[string]int

	errMsg      string
	backendErr  string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	spinner           spinner.Model
	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI with an empty, closed dashboard. The catalog
// is requested by Init.
func NewModel(opts Options) *Model {
	hub := opts.Hub
	if hub == nil {
		hub = overlay.NewPointerHub()
	}
	regions := opts.Regions
	if regions == nil {
		regions = NewZoneRegions(zone.New())
	}
	machine := overlay.NewMachine(catalog.Grouped{})
	m := &Model{
		base:       newLevel(baseLevelID, rootTitle, nil),
		machine:    machine,
		hub:        hub,
		regions:    regions,
		source:     opts.Source,
		launcher:   opts.Launcher,
		opener:     opts.Opener,
		backend:    opts.Watcher,
		backendURL: opts.BackendURL,
		bus:        command.New(),
		launching:  map[string]int{},
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
	}
	m.router = overlay.NewRouter(machine, hub, regions)
	machine.OnChange(m.handleOverlayChange)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.spinner = spinner.New(spinner.WithSpinner(spinner.MiniDot))
	if styles.Loading != nil {
		m.spinner.Style = styles.Loading.Copy()
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

func newLevel(id, title string, items []uistate.Item) *level {
	return uistate.NewLevel(id, title, items)
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.reloadCatalog()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
		reflect.TypeOf(catalogLoadedMsg{}):  m.handleCatalogLoadedMsg,
		reflect.TypeOf(launchResultMsg{}):   m.handleLaunchResultMsg,
		reflect.TypeOf(openResultMsg{}):     m.handleOpenResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// State returns the overlay snapshot currently on screen.
func (m *Model) State() overlay.State {
	return m.machine.State()
}

// Catalog returns the catalog the dashboard is showing.
func (m *Model) Catalog() catalog.Grouped {
	return m.machine.Catalog()
}

// handleOverlayChange keeps the folder list in step with the open group.
func (m *Model) handleOverlayChange(prev, next overlay.State) {
	group, ok := next.Group()
	if !ok {
		m.folder = nil
		return
	}
	id := folderLevelID(group)
	if m.folder == nil || m.folder.ID != id {
		m.folder = newLevel(id, group, appItems(m.machine.Catalog().Apps(group)))
	}
	if app, ok := next.App(); ok {
		if idx := m.folder.IndexOf(app.Name); idx >= 0 {
			m.folder.SetCursor(idx)
		}
	}
	m.syncViewport(m.folder)
	if prevGroup, _ := prev.Group(); prevGroup != group {
		if idx := m.base.IndexOf(group); idx >= 0 {
			m.base.SetCursor(idx)
		}
	}
}

// activeLevel returns the list that receives cursor keys and filter input:
// the folder grid while closed, the open folder while only it is visible.
// The details layer has no list.
func (m *Model) activeLevel() *level {
	switch m.machine.State().Kind() {
	case overlay.Closed:
		return m.base
	case overlay.FolderOpen:
		return m.folder
	default:
		return nil
	}
}

func (m *Model) busy() bool {
	return m.loading || m.launchesInFlight() > 0
}

func (m *Model) launchesInFlight() int {
	n := 0
	for _, count := range m.launching {
		n += count
	}
	return n
}

func (m *Model) quit() tea.Cmd {
	m.router.Close()
	if n := m.bus.Inflight(); n > 0 {
		events.Command.Abandon(n)
	}
	m.bus.Close()
	if closer, ok := m.regions.(interface{ Close() }); ok {
		closer.Close()
	}
	return tea.Quit
}

func folderLevelID(group string) string {
	return "folder:" + group
}

func groupItems(c catalog.Grouped) []uistate.Item {
	keys := c.Keys()
	items := make([]uistate.Item, 0, len(keys))
	for _, key := range keys {
		items = append(items, uistate.Item{ID: key, Label: key})
	}
	return items
}

func appItems(apps []catalog.AppDescriptor) []uistate.Item {
	items := make([]uistate.Item, 0, len(apps))
	for _, app := range apps {
		items = append(items, uistate.Item{ID: app.Name, Label: app.Name, Detail: app.Description})
	}
	return items
}
