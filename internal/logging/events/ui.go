package events

import "github.com/atomicstack/popup-apps/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type PointerTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Pointer = PointerTracer{}
)

func (UITracer) Cursor(levelID string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"level": levelID, "cursor": cursor})
}

func (UITracer) Enter(levelID, itemID, label string) {
	logging.Trace("ui.enter", map[string]interface{}{
		"level": levelID,
		"item":  itemID,
		"label": label,
	})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (FilterTracer) Cleared(levelID string) {
	logging.Trace("filter.clear", map[string]interface{}{"level": levelID})
}

func (FilterTracer) WordBackspace(levelID, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Cursor(levelID string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"level": levelID, "cursor": pos})
}

func (FilterTracer) Append(levelID, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"level": levelID, "filter": filter})
}

func (FilterTracer) Backspace(levelID, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"level": levelID, "filter": filter})
}

// Consumed records a click handled by a tile before it reaches the pointer hub.
func (PointerTracer) Consumed(target string, x, y int) {
	logging.Trace("pointer.consumed", map[string]interface{}{"target": target, "x": x, "y": y})
}

func (PointerTracer) Published(x, y, listeners int) {
	logging.Trace("pointer.publish", map[string]interface{}{"x": x, "y": y, "listeners": listeners})
}

func (FilterTracer) CursorWord(levelID string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"level": levelID, "cursor": pos})
}
