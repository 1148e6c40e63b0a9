package events

import "github.com/atomicstack/title-page-form/internal/logging"

type WorkflowTracer struct{}

type CommandTracer struct{}

var (
	Workflow = WorkflowTracer{}
	Command  = CommandTracer{}
)

func (WorkflowTracer) Start(stage string) {
	logging.Trace("workflow."+stage+".start", nil)
}

func (WorkflowTracer) InFlight(stage string) {
	logging.Trace("workflow."+stage+".in-flight", nil)
}

func (WorkflowTracer) Success(stage, url string) {
	logging.Trace("workflow."+stage+".success", map[string]interface{}{"url": url})
}

func (WorkflowTracer) Error(stage string, err error) {
	if err == nil {
		return
	}
	logging.Trace("workflow."+stage+".error", map[string]interface{}{"error": err.Error()})
}

func (WorkflowTracer) Open(url string, err error) {
	payload := map[string]interface{}{"url": url}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("workflow.open", payload)
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
