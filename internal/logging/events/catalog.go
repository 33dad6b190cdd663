package events

import "github.com/atomicstack/popup-apps/internal/logging"

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) Request(seq int, url string) {
	logging.Trace("catalog.request", map[string]interface{}{"seq": seq, "url": url})
}

func (CatalogTracer) Loaded(seq, groups, apps int) {
	logging.Trace("catalog.loaded", map[string]interface{}{"seq": seq, "groups": groups, "apps": apps})
}

func (CatalogTracer) Failed(seq int, err error) {
	payload := map[string]interface{}{"seq": seq}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("catalog.failed", payload)
}

func (CatalogTracer) Stale(seq, latest int) {
	logging.Trace("catalog.stale", map[string]interface{}{"seq": seq, "latest": latest})
}
