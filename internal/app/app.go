package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/title-page-form/internal/api"
	"github.com/atomicstack/title-page-form/internal/logging/events"
	"github.com/atomicstack/title-page-form/internal/suggest"
	"github.com/atomicstack/title-page-form/internal/ui"
	"github.com/atomicstack/title-page-form/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	BaseURL     string
	Completions string
	Timeout     time.Duration
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
	NoOpen      bool

	// InitialWidth and InitialHeight size the first frame; later resizes
	// still apply. Width and Height pin the size instead.
	InitialWidth  int
	InitialHeight int
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (err error) {
	defer func() { events.App.Exit(err) }()

	model, err := newModel(context.Background(), cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func newModel(ctx context.Context, cfg Config) (*ui.Model, error) {
	client, err := api.New(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}
	var opener workflow.Opener = workflow.BrowserOpener{}
	if cfg.NoOpen {
		opener = workflow.NopOpener{}
	}
	var completions *suggest.Source
	if cfg.Completions != "" {
		completions = suggest.NewCache(client).Source(cfg.Completions)
	}
	startDir, err := os.Getwd()
	if err != nil {
		startDir = "."
	}
	return ui.NewModel(ui.Options{
		Workflow:      workflow.New(client, opener),
		Completions:   completions,
		Width:         cfg.Width,
		Height:        cfg.Height,
		InitialWidth:  cfg.InitialWidth,
		InitialHeight: cfg.InitialHeight,
		ShowFooter:    cfg.ShowFooter,
		Verbose:       cfg.Verbose,
		Animate:       true,
		StartDir:      startDir,
		Context:       ctx,
	}), nil
}
