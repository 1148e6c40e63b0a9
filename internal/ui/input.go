package ui

import (
	"fmt"
	"unicode"

	"github.com/atomicstack/title-page-form/internal/logging/events"
	uistate "github.com/atomicstack/title-page-form/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Quit) {
		return tea.Quit
	}
	if m.notification != nil {
		return m.handleNotificationKey(keyMsg)
	}
	if m.picking {
		return m.handlePickerKey(keyMsg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(keyMsg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(keyMsg, m.keys.Submit):
		return m.submit()
	case key.Matches(keyMsg, m.keys.Reset):
		return m.clearForm()
	case key.Matches(keyMsg, m.keys.Browse):
		return m.openPicker()
	case key.Matches(keyMsg, m.keys.Detach):
		m.clearUpload()
		return nil
	case key.Matches(keyMsg, m.keys.Open):
		return m.openPreview()
	}

	switch kindOf(m.focus) {
	case focusText:
		return m.handleTextKey(keyMsg)
	case focusListInput:
		return m.handleListInputKey(keyMsg)
	case focusListItems:
		return m.handleListItemsKey(keyMsg)
	case focusFont:
		return m.handleFontKey(keyMsg)
	case focusButton:
		return m.handleButtonKey(keyMsg)
	case focusUpload:
		return m.handleUploadKey(keyMsg)
	case focusPreview:
		return m.handlePreviewKey(keyMsg)
	}
	return nil
}

func (m *Model) handleNotificationKey(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, m.keys.Dismiss) {
		return nil
	}
	events.Form.Dismiss(m.notification.Title)
	m.notification = nil
	return nil
}

// forwardToInput hands msg to the focused text input and reports whether its
// value changed.
func (m *Model) forwardToInput(id string, msg tea.KeyMsg) (bool, tea.Cmd) {
	ti, ok := m.inputs[id]
	if !ok {
		return false, nil
	}
	before := ti.Value()
	updated, cmd := ti.Update(msg)
	*ti = updated
	return ti.Value() != before, cmd
}

func (m *Model) handleTextKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Enter) {
		return m.moveFocus(1)
	}
	changed, cmd := m.forwardToInput(m.focus, msg)
	if !changed {
		return cmd
	}
	value := m.inputs[m.focus].Value()
	switch m.focus {
	case fieldTitle:
		m.form.Title = value
	case fieldPartName:
		m.form.PartName = value
	case fieldPartAdditional:
		m.form.PartAdditional = value
	}
	events.Form.Edit(m.focus, value)
	return cmd
}

func (m *Model) handleListInputKey(msg tea.KeyMsg) tea.Cmd {
	list := m.listFor(m.focus)
	if list == nil {
		return nil
	}
	if idx, ok := pickIndex(msg.String()); ok {
		if list.Pick(idx) {
			m.syncListInput(list)
		}
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Add):
		m.commitList(list, list.Commit)
		return nil
	case key.Matches(msg, m.keys.Enter):
		m.commitList(list, list.Enter)
		return nil
	case key.Matches(msg, m.keys.Up):
		list.Navigate(uistate.KeyUp)
		return nil
	case key.Matches(msg, m.keys.Down):
		list.Navigate(uistate.KeyDown)
		return nil
	}
	changed, cmd := m.forwardToInput(m.focus, msg)
	if !changed {
		return cmd
	}
	value := m.inputs[m.focus].Value()
	list.Edit(value)
	if value == "" {
		// deleting the pending text is an explicit clear
		list.ClearPending()
	}
	return cmd
}

// commitList runs a list action that may append an item and keeps the
// pending input in step with the list.
func (m *Model) commitList(list *uistate.ListField, action func() bool) {
	before := len(list.Items)
	action()
	m.syncListInput(list)
	if len(list.Items) > before && m.verbose {
		m.setInfo(fmt.Sprintf("Added %q to %s", list.Items[len(list.Items)-1], list.Label))
	}
}

func (m *Model) syncListInput(list *uistate.ListField) {
	ti, ok := m.inputs[list.InputID()]
	if !ok || ti.Value() == list.Pending {
		return
	}
	ti.SetValue(list.Pending)
	ti.CursorEnd()
}

func (m *Model) handleListItemsKey(msg tea.KeyMsg) tea.Cmd {
	list := m.listFor(m.focus)
	if list == nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		list.MoveItemCursor(-1)
	case key.Matches(msg, m.keys.Down):
		list.MoveItemCursor(1)
	case key.Matches(msg, m.keys.Home):
		list.MoveItemCursorHome()
	case key.Matches(msg, m.keys.End):
		list.MoveItemCursorEnd()
	case key.Matches(msg, m.keys.Remove):
		idx := list.ItemCursor
		if idx >= len(list.Items) {
			return nil
		}
		removed := list.Items[idx]
		if list.RemoveAt(idx) && m.verbose {
			m.setInfo(fmt.Sprintf("Removed %q from %s", removed, list.Label))
		}
		return m.ensureFocus()
	}
	return nil
}

func (m *Model) handleFontKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.selectFont(uistate.CycleFont(m.form.Font, -1))
		return nil
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.selectFont(uistate.CycleFont(m.form.Font, 1))
		return nil
	case key.Matches(msg, m.keys.Enter):
		return m.moveFocus(1)
	}
	if msg.Type == tea.KeyBackspace {
		m.fontQuery = ""
		return nil
	}
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
		return nil
	}
	for _, r := range msg.Runes {
		if unicode.IsControl(r) {
			return nil
		}
	}
	query := m.fontQuery + string(msg.Runes)
	font, ok := uistate.MatchFont(query)
	if !ok {
		query = string(msg.Runes)
		font, ok = uistate.MatchFont(query)
	}
	if !ok {
		m.fontQuery = ""
		return nil
	}
	m.fontQuery = query
	m.selectFont(font)
	return nil
}

func (m *Model) selectFont(font string) {
	if font == m.form.Font {
		return
	}
	m.form.Font = font
	events.Form.Font(font)
}

func (m *Model) handleButtonKey(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, m.keys.Press) {
		return nil
	}
	switch m.focus {
	case fieldSubmit:
		return m.submit()
	case fieldClear:
		return m.clearForm()
	case fieldCombine:
		return m.combine()
	}
	return nil
}

func (m *Model) clearForm() tea.Cmd {
	m.form.Clear()
	for id, value := range map[string]string{
		fieldTitle:          m.form.Title,
		fieldPartName:       m.form.PartName,
		fieldPartAdditional: m.form.PartAdditional,
	} {
		m.inputs[id].SetValue(value)
	}
	events.Form.Clear()
	if m.verbose {
		m.setInfo("Form cleared")
	}
	return m.ensureFocus()
}
