package events

import "github.com/atomicstack/title-page-form/internal/logging"

type FormTracer struct{}

type ListTracer struct{}

type UploadTracer struct{}

var (
	Form   = FormTracer{}
	List   = ListTracer{}
	Upload = UploadTracer{}
)

func (FormTracer) Focus(field string) {
	logging.Trace("form.focus", map[string]interface{}{"field": field})
}

func (FormTracer) Edit(field, value string) {
	logging.Trace("form.edit", map[string]interface{}{"field": field, "value": value})
}

func (FormTracer) Font(font string) {
	logging.Trace("form.font", map[string]interface{}{"font": font})
}

func (FormTracer) Clear() {
	logging.Trace("form.clear", nil)
}

func (FormTracer) Blocked(dirty []string) {
	logging.Trace("form.submit.blocked", map[string]interface{}{"dirty": dirty})
}

func (FormTracer) Submit(title string, composers, extraInfo int) {
	logging.Trace("form.submit", map[string]interface{}{
		"title":      title,
		"composers":  composers,
		"extra_info": extraInfo,
	})
}

func (FormTracer) Dismiss(title string) {
	logging.Trace("form.notification.dismiss", map[string]interface{}{"title": title})
}

func (ListTracer) Commit(list, value string, size int) {
	logging.Trace("list.commit", map[string]interface{}{"list": list, "value": value, "size": size})
}

func (ListTracer) Remove(list string, index int, size int) {
	logging.Trace("list.remove", map[string]interface{}{"list": list, "index": index, "size": size})
}

func (ListTracer) Cursor(list string, cursor int) {
	logging.Trace("list.cursor", map[string]interface{}{"list": list, "cursor": cursor})
}

func (UploadTracer) Select(name string, size int) {
	logging.Trace("upload.select", map[string]interface{}{"name": name, "bytes": size})
}

func (UploadTracer) Clear() {
	logging.Trace("upload.clear", nil)
}

func (UploadTracer) Error(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("upload.error", map[string]interface{}{"path": path, "error": err.Error()})
}
