package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/title-page-form/internal/api"
	"github.com/atomicstack/title-page-form/internal/logging"
	"github.com/atomicstack/title-page-form/internal/logging/events"
	"github.com/atomicstack/title-page-form/internal/ui/command"
	"github.com/atomicstack/title-page-form/internal/workflow"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultPickerHeight = 10

type uploadLoadedMsg struct {
	path   string
	upload api.Upload
	err    error
}

var readFile = os.ReadFile

func newPicker(startDir string) filepicker.Model {
	fp := filepicker.New()
	if startDir != "" {
		fp.CurrentDirectory = startDir
	}
	fp.AutoHeight = false
	fp.Height = defaultPickerHeight
	return fp
}

func (m *Model) pickerHeight() int {
	if m.height <= 0 {
		return defaultPickerHeight
	}
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) openPicker() tea.Cmd {
	if m.form.Artifact == nil {
		m.setInfo("Generate a title page before choosing a file")
		return nil
	}
	m.picking = true
	m.picker.Height = m.pickerHeight()
	return m.picker.Init()
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Cancel) {
		m.picking = false
		return nil
	}
	return m.updatePicker(msg)
}

func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		return tea.Batch(cmd, m.readUploadCmd(path))
	}
	return cmd
}

func (m *Model) handleUploadKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Enter) {
		path := cleanUploadPath(m.inputs[fieldCombineArea].Value())
		if path == "" {
			return m.openPicker()
		}
		return m.readUploadCmd(path)
	}
	_, cmd := m.forwardToInput(fieldCombineArea, msg)
	return cmd
}

func (m *Model) readUploadCmd(path string) tea.Cmd {
	return m.bus.Execute(command.Request{
		ID:    m.nextRequestID("upload"),
		Label: "read " + path,
		Handler: func(context.Context) tea.Msg {
			data, err := readFile(path)
			if err != nil {
				return uploadLoadedMsg{path: path, err: err}
			}
			return uploadLoadedMsg{path: path, upload: api.Upload{Name: filepath.Base(path), Data: data}}
		},
	})
}

func (m *Model) handleUploadLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(uploadLoadedMsg)
	if !ok {
		return nil
	}
	if loaded.err != nil {
		logging.Errorf("read upload %s: %w", loaded.path, loaded.err)
		events.Upload.Error(loaded.path, loaded.err)
		m.notify(workflow.Notification{
			Title:    "Error",
			Message:  fmt.Sprintf("Could not read %s: %v", loaded.path, loaded.err),
			Severity: workflow.SeverityError,
		})
		return nil
	}
	m.inputs[fieldCombineArea].SetValue("")
	m.setUpload(loaded.upload)
	return nil
}

// cleanUploadPath undoes the quoting terminals apply to dropped paths.
func cleanUploadPath(raw string) string {
	path := strings.TrimSpace(raw)
	if len(path) >= 2 {
		first, last := path[0], path[len(path)-1]
		if (first == '\'' || first == '"') && first == last {
			path = path[1 : len(path)-1]
		}
	}
	path = strings.ReplaceAll(path, `\ `, " ")
	path = strings.TrimPrefix(path, "file://")
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
