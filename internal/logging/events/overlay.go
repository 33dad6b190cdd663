package events

import "github.com/atomicstack/popup-apps/internal/logging"

type OverlayTracer struct{}

type overlayReason string

const (
	OverlayReasonEmptyGroup   overlayReason = "empty-group"
	OverlayReasonUnknownGroup overlayReason = "unknown-group"
	OverlayReasonAlreadyOpen  overlayReason = "already-open"
	OverlayReasonNoFolder     overlayReason = "no-folder"
	OverlayReasonForeignApp   overlayReason = "foreign-app"
	OverlayReasonNoDetails    overlayReason = "no-details"
	OverlayReasonClosed       overlayReason = "closed"
)

var Overlay = OverlayTracer{}

func (OverlayTracer) Transition(op, from, to string) {
	logging.Trace("overlay.transition", map[string]interface{}{"op": op, "from": from, "to": to})
}

func (OverlayTracer) Rejected(op string, reason overlayReason) {
	logging.Trace("overlay.rejected", map[string]interface{}{"op": op, "reason": string(reason)})
}

func (OverlayTracer) Dismiss(layer string) {
	logging.Trace("overlay.dismiss", map[string]interface{}{"layer": layer})
}

func (OverlayTracer) Subscribe(listeners int) {
	logging.Trace("overlay.router.subscribe", map[string]interface{}{"listeners": listeners})
}

func (OverlayTracer) Unsubscribe(listeners int) {
	logging.Trace("overlay.router.unsubscribe", map[string]interface{}{"listeners": listeners})
}

func (OverlayTracer) Route(x, y int, outcome string) {
	logging.Trace("overlay.router.route", map[string]interface{}{"x": x, "y": y, "outcome": outcome})
}
