package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/title-page-form/internal/format/table"
	"github.com/atomicstack/title-page-form/internal/logging"
	"github.com/atomicstack/title-page-form/internal/ui/command"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type openResultMsg struct {
	url string
	err error
}

type copyResultMsg struct {
	url string
	err error
}

var clipboardWrite = clipboard.WriteAll

func (m *Model) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Enter):
		return m.openPreview()
	case key.Matches(msg, m.keys.Copy):
		return m.copyPreviewURL()
	}
	return nil
}

func (m *Model) openPreview() tea.Cmd {
	url := m.form.PreviewURL()
	if url == "" {
		m.setInfo("No title page to open yet")
		return nil
	}
	if m.workflow == nil {
		return nil
	}
	wf := m.workflow
	return m.bus.Execute(command.Request{
		ID:    m.nextRequestID("open"),
		Label: "open " + url,
		Handler: func(context.Context) tea.Msg {
			return openResultMsg{url: url, err: wf.Open(url)}
		},
	})
}

func (m *Model) handleOpenResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(openResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		logging.Errorf("open %s: %w", res.url, res.err)
		m.setInfo(fmt.Sprintf("Could not open %s: %v", res.url, res.err))
		return nil
	}
	m.setInfo("Opened " + res.url)
	return nil
}

func (m *Model) copyPreviewURL() tea.Cmd {
	url := m.form.PreviewURL()
	if url == "" {
		return nil
	}
	return m.bus.Execute(command.Request{
		ID:    m.nextRequestID("copy"),
		Label: "copy " + url,
		Handler: func(context.Context) tea.Msg {
			return copyResultMsg{url: url, err: clipboardWrite(url)}
		},
	})
}

func (m *Model) handleCopyResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(copyResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		logging.Errorf("copy %s: %w", res.url, res.err)
		m.setInfo(fmt.Sprintf("Could not copy url: %v", res.err))
		return nil
	}
	m.setInfo("Copied " + res.url)
	return nil
}

// previewLines describes the current artifact.
func (m *Model) previewLines() []string {
	url := m.form.PreviewURL()
	if url == "" {
		if m.form.Generating() {
			return []string{"Generating title page…"}
		}
		return []string{"No title page yet.", "Fill in the form and press ctrl+s."}
	}
	rows := [][]string{{"url", url}}
	if name := m.form.Artifact.Filename; name != "" {
		rows = append(rows, []string{"file", name})
	}
	if m.form.Upload != nil {
		rows = append(rows, []string{"upload", m.form.Upload.Name})
	}
	if m.form.Combined != "" {
		rows = append(rows, []string{"combined", m.form.Combined})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft})
	lines = append(lines, "", "ctrl+o open  y copy url")
	return lines
}

// renderPreviewPanel builds the bordered preview box with exactly height
// rows and totalWidth columns.
func (m *Model) renderPreviewPanel(totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	border := lipgloss.NewStyle()
	if styles.PreviewBorder != nil {
		border = *styles.PreviewBorder
	}
	if m.focus == fieldPreview && styles.FocusedLabel != nil {
		border = *styles.FocusedLabel
	}

	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	titleSeg := " Preview "
	dashes := totalWidth - 4 - len([]rune(titleSeg))
	if dashes < 0 {
		titleSeg = ""
		dashes = totalWidth - 4
	}
	if dashes < 0 {
		dashes = 0
	}
	title := titleSeg
	if styles.PreviewTitle != nil {
		title = styles.PreviewTitle.Render(titleSeg)
	}
	rows := make([]string, 0, height)
	rows = append(rows, border.Render(tlc+hz)+title+border.Render(strings.Repeat(hz, dashes)+hz+trc))

	content := m.previewLines()
	for i := 0; i < innerH; i++ {
		var line string
		if i < len(content) {
			line = content[i]
		}
		w := lipgloss.Width(line)
		if w > innerW {
			line = truncate.StringWithTail(line, uint(innerW-1), "…")
			w = lipgloss.Width(line)
		}
		if w < innerW {
			line += strings.Repeat(" ", innerW-w)
		}
		if styles.PreviewBody != nil {
			line = styles.PreviewBody.Render(line)
		}
		rows = append(rows, border.Render(vt)+line+border.Render(vt))
	}
	rows = append(rows, border.Render(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}
