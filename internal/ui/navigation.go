package ui

import (
	"github.com/atomicstack/title-page-form/internal/logging/events"
	uistate "github.com/atomicstack/title-page-form/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Stable element identifiers.
const (
	fieldTitle          = "title"
	fieldPartName       = "part-name"
	fieldPartAdditional = "part-additional"
	fieldComposerInput  = "composer-next-input"
	fieldComposerList   = "composer-list"
	fieldExtraInput     = "extra-line-next-input"
	fieldExtraList      = "extra-line-list"
	fieldFont           = "font"
	fieldSubmit         = "submit-button"
	fieldClear          = "clear-button"
	fieldCombineArea    = "combine-area"
	fieldCombine        = "combine-button"
	fieldPreview        = "preview"
)

type focusKind int

const (
	focusText focusKind = iota
	focusListInput
	focusListItems
	focusFont
	focusButton
	focusUpload
	focusPreview
)

func kindOf(id string) focusKind {
	switch id {
	case fieldComposerInput, fieldExtraInput:
		return focusListInput
	case fieldComposerList, fieldExtraList:
		return focusListItems
	case fieldFont:
		return focusFont
	case fieldSubmit, fieldClear, fieldCombine:
		return focusButton
	case fieldCombineArea:
		return focusUpload
	case fieldPreview:
		return focusPreview
	default:
		return focusText
	}
}

func newInput(placeholder string) *textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.Prompt != nil {
		ti.PromptStyle = styles.Prompt.Copy()
	}
	if styles.Input != nil {
		ti.TextStyle = styles.Input.Copy()
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = styles.Placeholder.Copy()
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = styles.Cursor.Copy()
	}
	return &ti
}

// listFor returns the list field an input or item list belongs to.
func (m *Model) listFor(id string) *uistate.ListField {
	switch id {
	case fieldComposerInput, fieldComposerList:
		return m.form.Composers
	case fieldExtraInput, fieldExtraList:
		return m.form.ExtraLines
	}
	return nil
}

// focusOrder lists the focus stops in display order. Item lists only take
// focus while they hold items; the combine section only exists once a title
// page has been generated.
func (m *Model) focusOrder() []string {
	order := []string{fieldTitle, fieldPartName, fieldPartAdditional, fieldComposerInput}
	if len(m.form.Composers.Items) > 0 {
		order = append(order, fieldComposerList)
	}
	order = append(order, fieldExtraInput)
	if len(m.form.ExtraLines.Items) > 0 {
		order = append(order, fieldExtraList)
	}
	order = append(order, fieldFont, fieldSubmit, fieldClear)
	if m.form.Artifact != nil {
		order = append(order, fieldCombineArea, fieldCombine, fieldPreview)
	}
	return order
}

func (m *Model) focusIndex() int {
	for i, id := range m.focusOrder() {
		if id == m.focus {
			return i
		}
	}
	return -1
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	order := m.focusOrder()
	idx := m.focusIndex()
	if idx < 0 {
		idx = 0
	} else {
		idx = ((idx+delta)%len(order) + len(order)) % len(order)
	}
	return m.setFocus(order[idx])
}

func (m *Model) setFocus(id string) tea.Cmd {
	if id == m.focus {
		return nil
	}
	if prev, ok := m.inputs[m.focus]; ok {
		prev.Blur()
	}
	m.focus = id
	m.fontQuery = ""
	events.Form.Focus(id)
	if next, ok := m.inputs[id]; ok {
		next.CursorEnd()
		return next.Focus()
	}
	return nil
}

// ensureFocus moves focus off stops that have disappeared, for example an
// item list that has just been emptied.
func (m *Model) ensureFocus() tea.Cmd {
	if m.focusIndex() >= 0 {
		return nil
	}
	switch m.focus {
	case fieldComposerList:
		return m.setFocus(fieldComposerInput)
	case fieldExtraList:
		return m.setFocus(fieldExtraInput)
	case fieldCombineArea, fieldCombine, fieldPreview:
		return m.setFocus(fieldSubmit)
	}
	return m.setFocus(fieldTitle)
}
