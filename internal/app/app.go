package app

import (
	"errors"
	"time"

	"github.com/atomicstack/popup-apps/internal/backend"
	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/httpclient"
	"github.com/atomicstack/popup-apps/internal/launch"
	"github.com/atomicstack/popup-apps/internal/overlay"
	"github.com/atomicstack/popup-apps/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Config describes user-provided application options.
type Config struct {
	BackendURL    string
	SupervisorURL string
	GroupBy       catalog.GroupBy
	Timeout       time.Duration
	Retries       int
	RateLimit     float64
	Refresh       time.Duration
	OpenCommand   string
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	watcher := backend.NewWatcher(newLoader(cfg), cfg.Refresh)
	defer func() {
		watcher.Stop()
		watcher.Wait()
	}()
	model := NewModel(cfg, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// NewModel assembles the dashboard model from cfg: the catalog loader talks
// to the backend, launches go to the supervisor, and destinations open with
// the configured command.
func NewModel(cfg Config, watcher *backend.Watcher) *ui.Model {
	supervisor := httpclient.New(clientOptions(cfg, cfg.SupervisorURL))
	return ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		BackendURL: cfg.BackendURL,
		Source:     newLoader(cfg),
		Launcher:   launch.NewClient(supervisor),
		Opener:     launch.NewCommandOpener(launch.ParseOpenCommand(cfg.OpenCommand)),
		Watcher:    watcher,
		Hub:        overlay.NewPointerHub(),
		Regions:    ui.NewZoneRegions(zone.New()),
	})
}

func newLoader(cfg Config) *catalog.Loader {
	return catalog.NewLoader(httpclient.New(clientOptions(cfg, cfg.BackendURL)), cfg.GroupBy)
}

func clientOptions(cfg Config, baseURL string) httpclient.Options {
	opts := httpclient.DefaultOptions()
	opts.BaseURL = baseURL
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	opts.Retries = cfg.Retries
	opts.RateLimit = cfg.RateLimit
	return opts
}
