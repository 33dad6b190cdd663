package events

import "github.com/atomicstack/popup-apps/internal/logging"

type LaunchTracer struct{}

var Launch = LaunchTracer{}

func (LaunchTracer) Request(requestID, source, category, folder string) {
	logging.Trace("launch.request", map[string]interface{}{
		"request":  requestID,
		"source":   source,
		"category": category,
		"folder":   folder,
	})
}

func (LaunchTracer) Succeeded(name, url string) {
	logging.Trace("launch.success", map[string]interface{}{"app": name, "url": url})
}

func (LaunchTracer) Failed(name string, err error) {
	payload := map[string]interface{}{"app": name}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("launch.error", payload)
}

func (LaunchTracer) Open(url string, command []string) {
	logging.Trace("launch.open", map[string]interface{}{"url": url, "command": command})
}
