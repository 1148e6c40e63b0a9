package ui

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/title-page-form/internal/suggest"
	"github.com/atomicstack/title-page-form/internal/theme"
	"github.com/atomicstack/title-page-form/internal/ui/command"
	uistate "github.com/atomicstack/title-page-form/internal/ui/state"
	"github.com/atomicstack/title-page-form/internal/workflow"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultHeader = "Title Page"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Workflow    *workflow.Workflow
	Completions *suggest.Source
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	// Animate enables the spinner shown while a request is in flight.
	Animate  bool
	StartDir string
	Context  context.Context

	// InitialWidth and InitialHeight size the view until the first resize
	// message arrives. Ignored when Width or Height pin the size.
	InitialWidth  int
	InitialHeight int
}

// Model implements the Bubble Tea model for the title page form.
type Model struct {
	form      *uistate.Form
	inputs    map[string]*textinput.Model
	focus     string
	fontQuery string

	notification *workflow.Notification
	infoMsg      string
	infoExpire   time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	animate     bool
	spinning    bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	picker  filepicker.Model
	picking bool

	handlers map[reflect.Type]msgHandler

	workflow       *workflow.Workflow
	completions    *suggest.Source
	suggestTargets map[string]*uistate.ListField
	bus            *command.Bus
	requestSeq     int
}

// NewModel initialises an empty form.
func NewModel(opts Options) *Model {
	form := uistate.NewForm()
	if opts.Completions != nil {
		form.Composers.EnableAutocomplete()
	}
	m := &Model{
		form:        form,
		showFooter:  opts.ShowFooter,
		verbose:     opts.Verbose,
		animate:     opts.Animate,
		keys:        defaultKeyMap(),
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		picker:      newPicker(opts.StartDir),
		workflow:    opts.Workflow,
		completions: opts.Completions,
		bus:         command.New(opts.Context),
	}
	if styles.Loading != nil {
		m.spinner.Style = styles.Loading.Copy()
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	} else if opts.InitialWidth > 0 {
		m.width = opts.InitialWidth
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	} else if opts.InitialHeight > 0 {
		m.height = opts.InitialHeight
	}
	m.help.Width = m.width
	m.inputs = map[string]*textinput.Model{
		fieldTitle:          newInput("Symphony No. 5"),
		fieldPartName:       newInput("Violin I"),
		fieldPartAdditional: newInput("in Bb"),
		fieldComposerInput:  newInput(form.Composers.Placeholder),
		fieldExtraInput:     newInput(form.ExtraLines.Placeholder),
		fieldCombineArea:    newInput("Drag a file here or press ctrl+f to browse"),
	}
	if opts.Completions != nil {
		m.suggestTargets = map[string]*uistate.ListField{
			opts.Completions.Endpoint(): form.Composers,
		}
	}
	m.setFocus(fieldTitle)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.completions == nil {
		return nil
	}
	if m.completions.Loaded() {
		m.applySuggestions(m.completions.Endpoint(), m.completions.Suggestions(), m.completions.Err())
		return nil
	}
	return m.loadSuggestionsCmd(m.completions)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	if m.picking {
		if cmd := m.updatePicker(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(spinner.TickMsg{}):      m.handleSpinnerTickMsg,
		reflect.TypeOf(suggestionsLoadedMsg{}): m.handleSuggestionsLoadedMsg,
		reflect.TypeOf(generateResultMsg{}):    m.handleGenerateResultMsg,
		reflect.TypeOf(combineResultMsg{}):     m.handleCombineResultMsg,
		reflect.TypeOf(uploadLoadedMsg{}):      m.handleUploadLoadedMsg,
		reflect.TypeOf(openResultMsg{}):        m.handleOpenResultMsg,
		reflect.TypeOf(copyResultMsg{}):        m.handleCopyResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.animate && !m.spinning && m.busy() {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) busy() bool {
	return m.form.Generating() || m.form.Combining()
}

func (m *Model) handleSpinnerTickMsg(msg tea.Msg) tea.Cmd {
	if !m.animate || !m.busy() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	m.picker.Height = m.pickerHeight()
	return nil
}

func (m *Model) nextRequestID(stage string) string {
	m.requestSeq++
	return fmt.Sprintf("%s-%d", stage, m.requestSeq)
}

// Form exposes the form state, mainly for tests and the program shell.
func (m *Model) Form() *uistate.Form {
	return m.form
}

// Focus returns the identifier of the focused element.
func (m *Model) Focus() string {
	return m.focus
}

// Notification returns the notification currently shown, if any.
func (m *Model) Notification() *workflow.Notification {
	return m.notification
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
