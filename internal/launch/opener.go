package launch

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atomicstack/popup-apps/internal/logging/events"
)

// Opener hands a launched app's URL to something that can display it.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// CommandOpener runs an external command with the URL appended as its last
// argument. The command is started, not waited for.
type CommandOpener struct {
	Command []string
}

// DefaultOpenCommand returns the platform's URL handler.
func DefaultOpenCommand() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"cmd", "/C", "start", ""}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

// ParseOpenCommand splits a configured command line on whitespace. A blank
// value selects the platform default.
func ParseOpenCommand(value string) []string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return DefaultOpenCommand()
	}
	return fields
}

// NewCommandOpener returns an opener running command, or the platform default
// when command is empty.
func NewCommandOpener(command []string) *CommandOpener {
	if len(command) == 0 {
		command = DefaultOpenCommand()
	}
	return &CommandOpener{Command: append([]string(nil), command...)}
}

func (o *CommandOpener) Open(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("open: empty url")
	}
	if len(o.Command) == 0 {
		return errors.New("open: no command configured")
	}
	args := append(append([]string(nil), o.Command[1:]...), url)
	events.Launch.Open(url, o.Command)
	cmd := exec.CommandContext(ctx, o.Command[0], args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
