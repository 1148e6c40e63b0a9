package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/title-page-form/internal/app"
	"github.com/atomicstack/title-page-form/internal/config"
	"github.com/atomicstack/title-page-form/internal/logging"
	"github.com/atomicstack/title-page-form/internal/logging/events"
	"golang.org/x/term"
)

var (
	isTerminal   = term.IsTerminal
	terminalSize = term.GetSize
)

type descriptor struct {
	name string
	fd   int
}

// terminal is the size the first frame is laid out for.
type terminal struct {
	Source string `json:"source,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	tty, err := detectTerminal(
		descriptor{"stdin", int(os.Stdin.Fd())},
		descriptor{"stdout", int(os.Stdout.Fd())},
	)
	events.App.Start(startupTrace(cfg, tty, err))
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.App.InitialWidth = tty.Width
	cfg.App.InitialHeight = tty.Height

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// detectTerminal refuses to start the form unless both key input and drawing
// go to a terminal. The size is read from stdout first.
func detectTerminal(stdin, stdout descriptor) (terminal, error) {
	for _, d := range []descriptor{stdin, stdout} {
		if d.fd < 0 || !isTerminal(d.fd) {
			return terminal{}, fmt.Errorf("the title page form needs an interactive terminal: %s is not a terminal", d.name)
		}
	}
	for _, d := range []descriptor{stdout, stdin} {
		w, h, err := terminalSize(d.fd)
		if err == nil && w > 0 && h > 0 {
			return terminal{Source: d.name, Width: w, Height: h}, nil
		}
	}
	return terminal{}, nil
}

func startupTrace(cfg config.Config, tty terminal, ttyErr error) map[string]interface{} {
	payload := map[string]interface{}{
		"argv":  cfg.Args,
		"flags": cfg.Flags,
		"backend": map[string]interface{}{
			"baseURL":     cfg.App.BaseURL,
			"completions": cfg.App.Completions,
			"timeout":     cfg.App.Timeout.String(),
			"openResults": !cfg.App.NoOpen,
		},
	}
	if ttyErr != nil {
		payload["terminalError"] = ttyErr.Error()
	} else {
		payload["terminal"] = tty
	}
	return payload
}
