package ui

import (
	"fmt"
	"strings"

	uistate "github.com/atomicstack/title-page-form/internal/ui/state"
	"github.com/atomicstack/title-page-form/internal/workflow"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	previewPanelMinWidth = 36  // below this the preview is drawn under the form
	previewPanelFraction = 0.4 // share of the width given to the preview panel
	maxSuggestionRows    = 9
	notificationWidth    = 60
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.notification != nil {
		return m.viewNotification(*m.notification)
	}
	if m.picking {
		return m.viewPicker()
	}
	if m.previewPanelWidth() > 0 {
		return m.viewSideBySide()
	}
	return m.viewVertical()
}

// previewPanelWidth returns the width of the right-hand preview panel, or 0
// when the terminal is too narrow to split.
func (m *Model) previewPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * previewPanelFraction)
	if w < previewPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) viewVertical() string {
	lines, focusLine := m.formLines()
	lines = append(lines, styledLine{})
	preview := m.previewLines()
	lines = append(lines, styledLine{text: "Preview", style: styles.PreviewTitle})
	for _, p := range preview {
		lines = append(lines, styledLine{text: p, style: styles.PreviewBody})
	}
	bottom := m.bottomLines()
	lines = windowLines(lines, focusLine, m.height-len(bottom), m.width)
	lines = append(lines, bottom...)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) viewSideBySide() string {
	prevW := m.previewPanelWidth()
	formW := m.width - prevW
	bottom := m.bottomLines()
	panelH := m.height - len(bottom)
	if m.height <= 0 {
		panelH = 0
	}

	lines, focusLine := m.formLines()
	if panelH > 0 {
		lines = windowLines(lines, focusLine, panelH, formW)
		for len(lines) < panelH {
			lines = append(lines, styledLine{})
		}
	}
	left := renderLines(applyWidth(lines, formW))
	leftRows := strings.Split(left, "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > formW {
			leftRows[i] = truncate.StringWithTail(row, uint(formW-1), "…")
		} else if w < formW {
			leftRows[i] = row + strings.Repeat(" ", formW-w)
		}
	}
	previewH := panelH
	if previewH <= 0 {
		previewH = len(leftRows)
	}
	right := m.renderPreviewPanel(prevW, previewH)
	top := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(leftRows, "\n"), right)
	if len(bottom) == 0 {
		return top
	}
	return top + "\n" + renderLines(applyWidth(bottom, m.width))
}

// formLines renders the form column and reports the line holding the focused
// element so the caller can keep it on screen.
func (m *Model) formLines() ([]styledLine, int) {
	lines := make([]styledLine, 0, 48)
	focusLine := 0
	mark := func(id string) {
		if m.focus == id {
			focusLine = len(lines)
		}
	}

	lines = append(lines, styledLine{text: defaultHeader, style: styles.Header}, styledLine{})

	for _, f := range []struct{ id, label string }{
		{fieldTitle, "Title"},
		{fieldPartName, "Part Name"},
		{fieldPartAdditional, "Additional Part Information"},
	} {
		lines = append(lines, m.labelLine(f.label, m.focus == f.id))
		mark(f.id)
		lines = append(lines, styledLine{text: m.inputs[f.id].View(), raw: true})
	}

	for _, l := range m.form.Lists() {
		lines = m.appendListLines(lines, l, mark)
	}

	lines = append(lines, m.labelLine("Font", m.focus == fieldFont))
	for _, font := range uistate.Fonts {
		selected := font == m.form.Font
		radio := "( )"
		style := styles.Font
		if selected {
			radio = "(•)"
			style = styles.SelectedFont
		}
		if selected {
			mark(fieldFont)
		}
		lines = append(lines, styledLine{text: "  " + radio + " " + font, style: style})
	}

	lines = append(lines, styledLine{})
	mark(fieldSubmit)
	mark(fieldClear)
	lines = append(lines, styledLine{
		text: m.renderButton("Submit", fieldSubmit) + "  " + m.renderButton("Clear", fieldClear),
		raw:  true,
	})
	if m.form.Generating() {
		lines = append(lines, m.busyLine("Generating title page…"))
	}

	if m.form.Artifact != nil {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "To add this title page to a file, add it below and press Combine", style: styles.Info})
		if m.form.Upload != nil {
			lines = append(lines, styledLine{text: "Current File: " + m.form.Upload.Name, style: styles.Info})
		}
		lines = append(lines, m.labelLine("File", m.focus == fieldCombineArea))
		mark(fieldCombineArea)
		lines = append(lines, styledLine{text: m.inputs[fieldCombineArea].View(), raw: true})
		mark(fieldCombine)
		lines = append(lines, styledLine{text: m.renderButton("Combine", fieldCombine), raw: true})
		if m.form.Combining() {
			lines = append(lines, m.busyLine("Combining…"))
		}
	}
	return lines, focusLine
}

func (m *Model) appendListLines(lines []styledLine, l *uistate.ListField, mark func(string)) []styledLine {
	inputID, listID := l.InputID(), l.ListID()
	focused := m.focus == inputID || m.focus == listID
	label := m.labelLine(l.Label, focused)
	if l.Dirty {
		dirty := " (not added)"
		if styles.Dirty != nil {
			dirty = styles.Dirty.Render(dirty)
		}
		if label.style != nil {
			label.text = label.style.Render(label.text)
		}
		label = styledLine{text: label.text + dirty, raw: true}
	}
	lines = append(lines, label)
	mark(inputID)
	lines = append(lines, styledLine{text: m.inputs[inputID].View(), raw: true})

	if l.Auto != nil && l.Auto.Visible() {
		if l.Auto.NoSuggestions() {
			lines = append(lines, styledLine{text: "    No suggestions", style: styles.NoSuggestions})
		} else {
			for i, s := range l.Auto.Filtered {
				if i == maxSuggestionRows {
					lines = append(lines, styledLine{
						text:  fmt.Sprintf("    … %d more", len(l.Auto.Filtered)-maxSuggestionRows),
						style: styles.NoSuggestions,
					})
					break
				}
				style := styles.Suggestion
				if i == l.Auto.Active {
					style = styles.ActiveSuggestion
				}
				lines = append(lines, styledLine{text: fmt.Sprintf("    %d %s", i+1, s), style: style})
			}
		}
	}

	for i, item := range l.Items {
		if m.focus == listID && i == l.ItemCursor {
			mark(listID)
		}
		lines = append(lines, m.itemLine(item, m.focus == listID && i == l.ItemCursor))
	}
	return lines
}

func (m *Model) labelLine(text string, focused bool) styledLine {
	if focused {
		return styledLine{text: text, style: styles.FocusedLabel}
	}
	return styledLine{text: text, style: styles.Label}
}

// itemLine renders a committed list item with the selection indicator.
func (m *Model) itemLine(label string, selected bool) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	return styledLine{
		text:          "  ▌ " + label,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 3,
	}
}

func (m *Model) renderButton(label, id string) string {
	text := "[ " + label + " ]"
	style := styles.Button
	if m.focus == id {
		style = styles.FocusedButton
	}
	if style == nil {
		return text
	}
	return style.Render(text)
}

func (m *Model) busyLine(text string) styledLine {
	if m.animate {
		return styledLine{text: m.spinner.View() + " " + styles.Loading.Render(text), raw: true}
	}
	return styledLine{text: text, style: styles.Loading}
}

func (m *Model) bottomLines() []styledLine {
	var lines []styledLine
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		m.help.Width = m.width
		lines = append(lines, styledLine{}, styledLine{text: m.help.View(m.keys), raw: true})
	}
	return lines
}

func (m *Model) viewNotification(n workflow.Notification) string {
	titleStyle := styles.Info
	switch n.Severity {
	case workflow.SeverityError:
		titleStyle = styles.Error
	case workflow.SeverityWarning:
		titleStyle = styles.Warning
	}
	width := notificationWidth
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}
	if width < 10 {
		width = 10
	}
	body := lipgloss.NewStyle().Width(width).Render(n.Message)
	title := n.Title
	if titleStyle != nil {
		title = titleStyle.Render(title)
	}
	hint := "enter dismiss"
	if styles.Footer != nil {
		hint = styles.Footer.Render(hint)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint)
	box := content
	if styles.NotificationBox != nil {
		box = styles.NotificationBox.Render(content)
	}
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) viewPicker() string {
	lines := []styledLine{
		{text: "Choose a file to combine with the title page", style: styles.Header},
		{},
		{text: m.picker.CurrentDirectory, style: styles.Label},
		{text: m.picker.View(), raw: true},
		{},
		{text: "enter select  esc cancel", style: styles.Footer},
	}
	return renderLines(applyWidth(lines, m.width))
}

// windowLines keeps at most height lines, scrolled so focusLine is visible.
func windowLines(lines []styledLine, focusLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := 0
	if focusLine >= height {
		start = focusLine - height + 2
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	if start < 0 {
		start = 0
	}
	return limitHeight(lines[start:], height, width)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
