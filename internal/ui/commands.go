package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/atomicstack/popup-apps/internal/launch"
	"github.com/atomicstack/popup-apps/internal/logging"
	"github.com/atomicstack/popup-apps/internal/logging/events"
	"github.com/atomicstack/popup-apps/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// launchResultMsg mirrors the launch client response.
type launchResultMsg struct {
	app    catalog.AppDescriptor
	result launch.Result
	err    error
}

// openResultMsg reports whether the destination could be handed to the
// opener.
type openResultMsg struct {
	app string
	url string
	err error
}

// launchApp starts a launch for app. Launches for different apps, or repeat
// launches of the same app, run independently and never touch the overlay
// state.
func (m *Model) launchApp(app catalog.AppDescriptor) tea.Cmd {
	if m.launcher == nil {
		m.errMsg = "Launching is not configured."
		return nil
	}
	launcher := m.launcher
	m.launching[app.Name]++
	m.errMsg = ""
	m.forceClearInfo()
	cmd := m.bus.Execute(command.Request{
		ID:    "launch",
		Label: app.Name,
		Handler: func(ctx context.Context) tea.Msg {
			res, err := launcher.Launch(ctx, app)
			return launchResultMsg{app: app, result: res, err: err}
		},
	})
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) handleLaunchResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(launchResultMsg)
	if !ok {
		return nil
	}
	name := result.app.Name
	if m.launching[name] > 1 {
		m.launching[name]--
	} else {
		delete(m.launching, name)
	}
	if result.err != nil {
		logging.Error(result.err)
		events.Launch.Failed(name, result.err)
		m.errMsg = launch.UserMessage(result.err)
		m.forceClearInfo()
		return nil
	}
	events.Launch.Succeeded(name, result.result.URL)
	if m.verbose {
		m.setInfo(fmt.Sprintf("Launched %s", name))
	}
	if m.opener == nil {
		m.setInfo(fmt.Sprintf("%s is ready at %s", name, result.result.URL))
		return nil
	}
	opener := m.opener
	url := result.result.URL
	return m.bus.Execute(command.Request{
		ID:    "open",
		Label: url,
		Handler: func(ctx context.Context) tea.Msg {
			return openResultMsg{app: name, url: url, err: opener.Open(ctx, url)}
		},
	})
}

func (m *Model) handleOpenResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(openResultMsg)
	if !ok {
		return nil
	}
	if result.err != nil {
		logging.Error(result.err)
		m.errMsg = fmt.Sprintf("Could not open %s: %v", result.url, result.err)
		return nil
	}
	if m.verbose {
		m.setInfo(fmt.Sprintf("Opened %s", result.url))
	}
	return nil
}

func (m *Model) startSpinner() tea.Cmd {
	return m.spinner.Tick
}

// handleSpinnerTickMsg keeps the spinner turning only while something is in
// flight; the first tick after going idle ends the loop.
func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.busy() {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// busyLabel describes what the spinner is waiting on.
func (m *Model) busyLabel() string {
	if m.loading {
		return "Loading apps…"
	}
	switch n := m.launchesInFlight(); n {
	case 0:
		return ""
	case 1:
		for name := range m.launching {
			return fmt.Sprintf("Launching %s…", name)
		}
	}
	return fmt.Sprintf("Launching %d apps…", m.launchesInFlight())
}
