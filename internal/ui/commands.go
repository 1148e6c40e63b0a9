package ui

import (
	"context"
	"fmt"

	"github.com/atomicstack/title-page-form/internal/api"
	"github.com/atomicstack/title-page-form/internal/logging/events"
	"github.com/atomicstack/title-page-form/internal/suggest"
	"github.com/atomicstack/title-page-form/internal/ui/command"
	"github.com/atomicstack/title-page-form/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

type suggestionsLoadedMsg struct {
	endpoint string
	items    []string
	err      error
}

type generateResultMsg struct {
	result workflow.GenerateResult
}

type combineResultMsg struct {
	result workflow.CombineResult
}

func (m *Model) loadSuggestionsCmd(src *suggest.Source) tea.Cmd {
	return m.bus.Execute(command.Request{
		ID:    m.nextRequestID("suggest"),
		Label: "completions " + src.Endpoint(),
		Handler: func(ctx context.Context) tea.Msg {
			items := src.Load(ctx)
			return suggestionsLoadedMsg{endpoint: src.Endpoint(), items: items, err: src.Err()}
		},
	})
}

func (m *Model) handleSuggestionsLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(suggestionsLoadedMsg)
	if !ok {
		return nil
	}
	m.applySuggestions(loaded.endpoint, loaded.items, loaded.err)
	return nil
}

// applySuggestions installs a fetched set into the list bound to endpoint. A
// failed fetch drops that list back to plain text entry.
func (m *Model) applySuggestions(endpoint string, items []string, err error) {
	list, ok := m.suggestTargets[endpoint]
	if !ok || list.Auto == nil {
		return
	}
	if err != nil {
		list.DisableAutocomplete()
		return
	}
	list.Auto.SetSuggestions(items)
}

func (m *Model) notify(n workflow.Notification) {
	m.notification = &n
}

func (m *Model) submit() tea.Cmd {
	if dirty := m.form.DirtyLists(); len(dirty) > 0 {
		events.Form.Blocked(dirty)
		m.notify(workflow.DataEntered())
		return nil
	}
	if m.workflow == nil {
		m.notify(workflow.Notification{Title: "Error", Message: "no backend configured", Severity: workflow.SeverityError})
		return nil
	}
	if !m.form.BeginGenerate() {
		events.Workflow.InFlight(workflow.StageGenerate)
		return nil
	}
	piece := m.form.Piece()
	events.Form.Submit(piece.Title, len(piece.Composers), len(piece.ExtraInfo))
	m.forceClearInfo()
	wf := m.workflow
	return m.bus.Execute(command.Request{
		ID:    m.nextRequestID(workflow.StageGenerate),
		Label: workflow.StageGenerate,
		Handler: func(ctx context.Context) tea.Msg {
			return generateResultMsg{result: wf.Generate(ctx, piece)}
		},
	})
}

func (m *Model) handleGenerateResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(generateResultMsg)
	if !ok {
		return nil
	}
	if res.result.Err != nil {
		m.form.FinishGenerate(nil)
		m.notify(workflow.NotificationFor(res.result.Err))
		return nil
	}
	artifact := res.result.Artifact
	m.form.FinishGenerate(&artifact)
	m.setInfo("Title page ready: " + artifact.URL)
	return nil
}

func (m *Model) combine() tea.Cmd {
	if m.form.Artifact == nil {
		m.setInfo("Generate a title page before combining")
		return nil
	}
	if m.form.Upload == nil {
		m.setInfo("Choose a file to combine with the title page first")
		return nil
	}
	if m.workflow == nil {
		return nil
	}
	filename, upload, ok := m.form.BeginCombine()
	if !ok {
		events.Workflow.InFlight(workflow.StageCombine)
		return nil
	}
	m.forceClearInfo()
	wf := m.workflow
	return m.bus.Execute(command.Request{
		ID:    m.nextRequestID(workflow.StageCombine),
		Label: workflow.StageCombine,
		Handler: func(ctx context.Context) tea.Msg {
			return combineResultMsg{result: wf.Combine(ctx, filename, upload)}
		},
	})
}

func (m *Model) handleCombineResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(combineResultMsg)
	if !ok {
		return nil
	}
	if res.result.Err != nil {
		m.form.FinishCombine("")
		m.notify(workflow.NotificationFor(res.result.Err))
		return nil
	}
	m.form.FinishCombine(res.result.URL)
	if res.result.OpenErr != nil {
		m.setInfo(fmt.Sprintf("Combined PDF ready at %s (could not open it: %v)", res.result.URL, res.result.OpenErr))
		return nil
	}
	m.setInfo("Opened combined PDF: " + res.result.URL)
	return nil
}

func (m *Model) clearUpload() {
	if !m.form.ClearUpload() {
		return
	}
	m.inputs[fieldCombineArea].SetValue("")
	events.Upload.Clear()
	m.setInfo("File removed")
}

func (m *Model) setUpload(u api.Upload) {
	m.form.SetUpload(u)
	events.Upload.Select(u.Name, len(u.Data))
	m.setInfo(fmt.Sprintf("Current File: %s", u.Name))
}
