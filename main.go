package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/popup-apps/internal/app"
	"github.com/atomicstack/popup-apps/internal/config"
	"github.com/atomicstack/popup-apps/internal/launch"
	"github.com/atomicstack/popup-apps/internal/logging"
	"github.com/atomicstack/popup-apps/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if err := requireTerminal(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg))
	err := app.Run(cfg.App)
	events.App.Stop(err)
	if err != nil {
		logging.Error(err)
	}
	if syncErr := logging.Sync(); syncErr != nil {
		fmt.Fprintf(os.Stderr, "log sync: %v\n", syncErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// requireTerminal fails when f cannot host the full-screen dashboard.
func requireTerminal(f *os.File) error {
	if !term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("%s is not a terminal; popup-apps must run interactively", f.Name())
	}
	return nil
}

// startupTracePayload records the settings the dashboard resolved to.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	return map[string]interface{}{
		"backend":     cfg.App.BackendURL,
		"supervisor":  cfg.App.SupervisorURL,
		"groupBy":     string(cfg.App.GroupBy),
		"refresh":     cfg.App.Refresh.String(),
		"timeout":     cfg.App.Timeout.String(),
		"retries":     cfg.App.Retries,
		"rateLimit":   cfg.App.RateLimit,
		"openCommand": launch.ParseOpenCommand(cfg.App.OpenCommand),
		"viewport": map[string]interface{}{
			"width":  cfg.App.Width,
			"height": cfg.App.Height,
			"footer": cfg.App.ShowFooter,
		},
		"configFile": cfg.File,
		"logFile":    cfg.Logging.FilePath,
		"args":       cfg.Args,
	}
}
