package events

import (
	"time"

	"github.com/atomicstack/title-page-form/internal/logging"
)

type HTTPTracer struct{}

var HTTP = HTTPTracer{}

func (HTTPTracer) Request(id, method, path string) {
	logging.Trace("http.request", map[string]interface{}{"id": id, "method": method, "path": path})
}

func (HTTPTracer) Response(id string, status int, elapsed time.Duration) {
	logging.Trace("http.response", map[string]interface{}{"id": id, "status": status, "elapsed_ms": elapsed.Milliseconds()})
}

func (HTTPTracer) Failure(id string, err error, elapsed time.Duration) {
	logging.Trace("http.failure", map[string]interface{}{"id": id, "error": err.Error(), "elapsed_ms": elapsed.Milliseconds()})
}
