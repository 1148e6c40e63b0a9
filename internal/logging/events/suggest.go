package events

import "github.com/atomicstack/title-page-form/internal/logging"

type SuggestTracer struct{}

var Suggest = SuggestTracer{}

func (SuggestTracer) Fetch(endpoint string) {
	logging.Trace("suggest.fetch", map[string]interface{}{"endpoint": endpoint})
}

func (SuggestTracer) Loaded(endpoint string, count int) {
	logging.Trace("suggest.loaded", map[string]interface{}{"endpoint": endpoint, "count": count})
}

func (SuggestTracer) Error(endpoint string, err error) {
	if err == nil {
		return
	}
	logging.Trace("suggest.error", map[string]interface{}{"endpoint": endpoint, "error": err.Error()})
}

func (SuggestTracer) Filter(list, value string, matches int) {
	logging.Trace("suggest.filter", map[string]interface{}{"list": list, "value": value, "matches": matches})
}

func (SuggestTracer) Active(list string, index int) {
	logging.Trace("suggest.active", map[string]interface{}{"list": list, "index": index})
}

func (SuggestTracer) Select(list, value string) {
	logging.Trace("suggest.select", map[string]interface{}{"list": list, "value": value})
}
