package state

import "github.com/atomicstack/title-page-form/internal/api"

// Phase is the submission stage the form is in.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseGenerating
	PhaseGenerated
	PhaseCombining
	PhaseCombined
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerating:
		return "generating"
	case PhaseGenerated:
		return "generated"
	case PhaseCombining:
		return "combining"
	case PhaseCombined:
		return "combined"
	default:
		return "editing"
	}
}

// Form holds everything the user has entered plus the results of the two
// backend stages.
type Form struct {
	Title          string
	PartName       string
	PartAdditional string
	Font           string

	Composers  *ListField
	ExtraLines *ListField

	Upload   *api.Upload
	Artifact *api.Artifact
	Combined string

	generating bool
	combining  bool
}

// NewForm returns an empty form with the default font selected.
func NewForm() *Form {
	return &Form{
		Font:       DefaultFont,
		Composers:  NewListField("composer", "Composers", "Ludwig van Beethoven"),
		ExtraLines: NewListField("extra-line", "Extra Information Lines", "in C minor"),
	}
}

// Lists returns the list fields in display order.
func (f *Form) Lists() []*ListField {
	return []*ListField{f.Composers, f.ExtraLines}
}

// Dirty reports whether any list input holds an uncommitted edit.
func (f *Form) Dirty() bool {
	return len(f.DirtyLists()) > 0
}

// DirtyLists names the lists with uncommitted edits.
func (f *Form) DirtyLists() []string {
	var out []string
	for _, l := range f.Lists() {
		if l.Dirty {
			out = append(out, l.Name)
		}
	}
	return out
}

// Piece snapshots the form as a generate request.
func (f *Form) Piece() api.Piece {
	return api.Piece{
		Title:          f.Title,
		Composers:      f.Composers.Snapshot(),
		Font:           f.Font,
		Part:           f.PartName,
		ExtraInfo:      f.ExtraLines.Snapshot(),
		PartAdditional: f.PartAdditional,
	}
}

// Clear resets the text fields, font and committed lists. Pending inputs,
// dirty flags, the upload and any generated artifact are kept.
func (f *Form) Clear() {
	f.Title = ""
	f.PartName = ""
	f.PartAdditional = ""
	f.Font = DefaultFont
	f.Composers.Reset()
	f.ExtraLines.Reset()
}

// BeginGenerate latches the generate stage. It returns false when a generate
// request is already outstanding.
func (f *Form) BeginGenerate() bool {
	if f.generating {
		return false
	}
	f.generating = true
	return true
}

// FinishGenerate settles the generate stage. A nil artifact leaves the
// previous one in place.
func (f *Form) FinishGenerate(artifact *api.Artifact) {
	f.generating = false
	if artifact != nil {
		a := *artifact
		f.Artifact = &a
		f.Combined = ""
	}
}

// CanCombine reports whether both inputs of the combine stage are present.
func (f *Form) CanCombine() bool {
	return f.Artifact != nil && f.Upload != nil
}

// BeginCombine latches the combine stage and returns its inputs.
func (f *Form) BeginCombine() (string, api.Upload, bool) {
	if f.combining || !f.CanCombine() {
		return "", api.Upload{}, false
	}
	f.combining = true
	return f.Artifact.Filename, *f.Upload, true
}

// FinishCombine settles the combine stage. An empty url means it failed.
func (f *Form) FinishCombine(url string) {
	f.combining = false
	if url != "" {
		f.Combined = url
	}
}

// Generating reports whether a generate request is outstanding.
func (f *Form) Generating() bool { return f.generating }

// Combining reports whether a combine request is outstanding.
func (f *Form) Combining() bool { return f.combining }

// SetUpload replaces the chosen score file.
func (f *Form) SetUpload(u api.Upload) {
	f.Upload = &u
}

// ClearUpload forgets the chosen score file.
func (f *Form) ClearUpload() bool {
	if f.Upload == nil {
		return false
	}
	f.Upload = nil
	return true
}

// PreviewURL is the URL of the current title page, if any.
func (f *Form) PreviewURL() string {
	if f.Artifact == nil {
		return ""
	}
	return f.Artifact.URL
}

// Phase derives the current stage from the artifact, the last combine and
// the in-flight latches.
func (f *Form) Phase() Phase {
	switch {
	case f.combining:
		return PhaseCombining
	case f.generating:
		return PhaseGenerating
	case f.Combined != "":
		return PhaseCombined
	case f.Artifact != nil:
		return PhaseGenerated
	default:
		return PhaseEditing
	}
}
