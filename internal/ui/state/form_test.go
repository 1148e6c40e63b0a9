package state

import (
	"testing"

	"github.com/atomicstack/title-page-form/internal/api"
	"github.com/google/go-cmp/cmp"
)

func TestNewFormDefaults(t *testing.T) {
	f := NewForm()
	if f.Font != DefaultFont {
		t.Fatalf("expected default font, got %q", f.Font)
	}
	if f.Phase() != PhaseEditing {
		t.Fatalf("expected editing phase, got %s", f.Phase())
	}
	p := f.Piece()
	if p.Composers == nil || p.ExtraInfo == nil {
		t.Fatalf("expected non-nil list snapshots")
	}
}

func TestDirtyListsReportsUncommittedInput(t *testing.T) {
	f := NewForm()
	if f.Dirty() {
		t.Fatalf("expected clean form")
	}
	f.Composers.Edit("Bach")
	if diff := cmp.Diff([]string{"composer"}, f.DirtyLists()); diff != "" {
		t.Fatalf("unexpected dirty lists (-want +got):\n%s", diff)
	}
	f.Composers.Commit()
	if f.Dirty() {
		t.Fatalf("expected clean form after commit")
	}
}

func TestPieceSnapshotsAreIndependent(t *testing.T) {
	f := NewForm()
	f.Title = "Symphony No. 5"
	f.PartName = "Violin I"
	f.PartAdditional = "in Bb"
	f.Composers.Edit("Beethoven")
	f.Composers.Commit()
	p := f.Piece()
	f.Composers.RemoveAt(0)
	want := api.Piece{
		Title:          "Symphony No. 5",
		Composers:      []string{"Beethoven"},
		Font:           DefaultFont,
		Part:           "Violin I",
		ExtraInfo:      []string{},
		PartAdditional: "in Bb",
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("unexpected piece (-want +got):\n%s", diff)
	}
}

func TestClearKeepsArtifactAndPendingInput(t *testing.T) {
	f := NewForm()
	f.Title = "Title"
	f.PartName = "Part"
	f.PartAdditional = "Extra"
	f.Font = "Amiri"
	f.Composers.Items = []string{"a"}
	f.ExtraLines.Items = []string{"b"}
	f.ExtraLines.Edit("pending")
	f.Artifact = &api.Artifact{URL: "http://x/a", Filename: "title.pdf"}
	f.SetUpload(api.Upload{Name: "score.pdf"})

	f.Clear()

	if f.Title != "" || f.PartName != "" || f.PartAdditional != "" {
		t.Fatalf("expected text fields reset, got %+v", f)
	}
	if f.Font != DefaultFont {
		t.Fatalf("expected default font, got %q", f.Font)
	}
	if len(f.Composers.Items) != 0 || len(f.ExtraLines.Items) != 0 {
		t.Fatalf("expected lists emptied")
	}
	if f.PreviewURL() != "http://x/a" {
		t.Fatalf("expected preview url kept, got %q", f.PreviewURL())
	}
	if f.Upload == nil {
		t.Fatalf("expected upload kept")
	}
	if f.ExtraLines.Pending != "pending" || !f.ExtraLines.Dirty {
		t.Fatalf("expected pending input untouched")
	}
}

func TestGenerateLatch(t *testing.T) {
	f := NewForm()
	if !f.BeginGenerate() {
		t.Fatalf("expected first generate to start")
	}
	if f.BeginGenerate() {
		t.Fatalf("expected second generate to be refused while in flight")
	}
	if f.Phase() != PhaseGenerating {
		t.Fatalf("expected generating phase, got %s", f.Phase())
	}
	f.FinishGenerate(nil)
	if f.Phase() != PhaseEditing {
		t.Fatalf("expected editing after failed generate, got %s", f.Phase())
	}
	f.BeginGenerate()
	f.FinishGenerate(&api.Artifact{URL: "http://x/a", Filename: "title.pdf"})
	if f.Phase() != PhaseGenerated {
		t.Fatalf("expected generated phase, got %s", f.Phase())
	}
	f.BeginGenerate()
	f.FinishGenerate(nil)
	if f.PreviewURL() != "http://x/a" {
		t.Fatalf("expected failed regenerate to keep artifact, got %q", f.PreviewURL())
	}
}

func TestCombineRequiresArtifactAndUpload(t *testing.T) {
	f := NewForm()
	f.SetUpload(api.Upload{Name: "score.pdf", Data: []byte("%PDF")})
	if _, _, ok := f.BeginCombine(); ok {
		t.Fatalf("expected combine refused without artifact")
	}
	f.FinishGenerate(&api.Artifact{URL: "http://x/a", Filename: "title.pdf"})
	name, upload, ok := f.BeginCombine()
	if !ok || name != "title.pdf" || upload.Name != "score.pdf" {
		t.Fatalf("unexpected combine inputs %q %+v %v", name, upload, ok)
	}
	if _, _, ok := f.BeginCombine(); ok {
		t.Fatalf("expected combine refused while in flight")
	}
	if f.Phase() != PhaseCombining {
		t.Fatalf("expected combining phase, got %s", f.Phase())
	}
	f.FinishCombine("http://x/combined.pdf")
	if f.Phase() != PhaseCombined {
		t.Fatalf("expected combined phase, got %s", f.Phase())
	}
	if !f.ClearUpload() || f.ClearUpload() {
		t.Fatalf("expected upload cleared exactly once")
	}
}
