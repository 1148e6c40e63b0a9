package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/title-page-form/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs the blocking part of a request off the update loop.
type Handler func(ctx context.Context) tea.Msg

// Request encapsulates a backend call issued by the form.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Bus turns requests into Bubble Tea commands.
type Bus struct {
	ctx context.Context
}

// New initialises a command bus whose requests run under ctx.
func New(ctx context.Context) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx}
}

// Execute wraps a request into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler(b.ctx)
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
