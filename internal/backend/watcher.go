// Package backend keeps the dashboard catalog fresh by polling the apps
// backend in the background.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/popup-apps/internal/catalog"
)

// minPollSpacing bounds how often the backend is hit when the interval is
// tiny or polls back up behind a slow load.
const minPollSpacing = 250 * time.Millisecond

// Event conveys a freshly loaded catalog or the error from a poll. Seq
// increases with every poll; the dashboard ignores an event whose Seq is not
// newer than the last one it applied.
type Event struct {
	Seq     int
	Catalog catalog.Grouped
	Err     error
}

// Watcher polls a catalog source at a fixed interval and publishes events.
type Watcher struct {
	source   catalog.Source
	interval time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	mu  sync.Mutex
	seq int
}

// NewWatcher creates a watcher that reloads from source every interval. The
// first poll happens one interval after creation; the initial load is the
// caller's. A non-positive interval yields a watcher that never polls.
func NewWatcher(source catalog.Source, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		throttle: newThrottle(minPollSpacing),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events. It is closed once the watcher
// has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) nextSeq() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	return w.seq
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	emit := func() bool {
		if !w.throttle.wait(w.ctx) {
			return false
		}
		seq := w.nextSeq()
		data, err := w.source.Load(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Seq: seq, Catalog: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if w.interval <= 0 {
		<-w.ctx.Done()
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
