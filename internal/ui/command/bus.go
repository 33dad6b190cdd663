package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/popup-apps/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs the work behind a request and reports back as a message.
type Handler func(ctx context.Context) tea.Msg

// Request encapsulates an asynchronous action such as a launch.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Bus runs requests as Bubble Tea commands under a shared context, so that
// in-flight work can be abandoned when the program exits.
type Bus struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	inflight int
}

// New initialises a command bus instance.
func New() *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{ctx: ctx, cancel: cancel}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	b.track(1)
	return func() tea.Msg {
		defer b.track(-1)
		if err := b.ctx.Err(); err != nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler(b.ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

// Inflight reports how many executed requests have not finished yet.
func (b *Bus) Inflight() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inflight
}

// Close cancels the shared context.
func (b *Bus) Close() {
	b.cancel()
}

func (b *Bus) track(delta int) {
	b.mu.Lock()
	b.inflight += delta
	b.mu.Unlock()
}
