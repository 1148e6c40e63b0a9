// Package workflow runs the two backend stages of building a title page:
// generating it from the form and combining it with an uploaded score.
package workflow

import (
	"context"

	"github.com/atomicstack/title-page-form/internal/api"
	"github.com/atomicstack/title-page-form/internal/logging"
	"github.com/atomicstack/title-page-form/internal/logging/events"
)

const (
	StageGenerate = "generate"
	StageCombine  = "combine"
)

// Client is the subset of the backend the workflow talks to.
type Client interface {
	Generate(ctx context.Context, piece api.Piece) (api.Artifact, error)
	Combine(ctx context.Context, titlePageFilename string, upload api.Upload) (api.Combined, error)
}

// GenerateResult is the settled outcome of a generate request.
type GenerateResult struct {
	Artifact api.Artifact
	Err      error
}

// CombineResult is the settled outcome of a combine request. OpenErr is set
// when the combined file was produced but could not be opened.
type CombineResult struct {
	URL     string
	Err     error
	OpenErr error
}

// Workflow binds a backend client to the opener used for finished files.
type Workflow struct {
	client Client
	opener Opener
}

// New returns a workflow. A nil opener discards combined URLs.
func New(client Client, opener Opener) *Workflow {
	if opener == nil {
		opener = NopOpener{}
	}
	return &Workflow{client: client, opener: opener}
}

// Generate asks the backend to render piece.
func (w *Workflow) Generate(ctx context.Context, piece api.Piece) GenerateResult {
	events.Workflow.Start(StageGenerate)
	artifact, err := w.client.Generate(ctx, piece)
	if err != nil {
		logging.Errorf("generate title page: %w", err)
		events.Workflow.Error(StageGenerate, err)
		return GenerateResult{Err: err}
	}
	events.Workflow.Success(StageGenerate, artifact.URL)
	return GenerateResult{Artifact: artifact}
}

// Combine merges the stored title page with upload and opens the result.
func (w *Workflow) Combine(ctx context.Context, titlePageFilename string, upload api.Upload) CombineResult {
	events.Workflow.Start(StageCombine)
	combined, err := w.client.Combine(ctx, titlePageFilename, upload)
	if err != nil {
		logging.Errorf("combine %s with %s: %w", titlePageFilename, upload.Name, err)
		events.Workflow.Error(StageCombine, err)
		return CombineResult{Err: err}
	}
	events.Workflow.Success(StageCombine, combined.URL)
	openErr := w.opener.Open(combined.URL)
	events.Workflow.Open(combined.URL, openErr)
	if openErr != nil {
		logging.Errorf("open %s: %w", combined.URL, openErr)
	}
	return CombineResult{URL: combined.URL, OpenErr: openErr}
}

// Open hands url to the configured opener.
func (w *Workflow) Open(url string) error {
	err := w.opener.Open(url)
	events.Workflow.Open(url, err)
	return err
}
