package state

import "strings"

// Key is a navigation key as seen by the autocomplete state machine.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyUp
	KeyDown
)

// Binding connects an Autocomplete to the owner of its text value and dirty
// flag, plus the submit action Enter falls back to when nothing matches.
type Binding struct {
	Value     func() string
	SetValue  func(string)
	MarkDirty func()
	Submit    func()
}

// Autocomplete tracks filtering, keyboard navigation and selection over a
// fixed suggestion set for a single bound text value.
type Autocomplete struct {
	Name     string
	Active   int
	Filtered []string
	Show     bool

	suggestions []string
	bind        Binding
}

// NewAutocomplete returns an autocomplete bound through b.
func NewAutocomplete(name string, b Binding) *Autocomplete {
	return &Autocomplete{Name: name, bind: b}
}

// SetSuggestions installs the fetched candidate set. The current filtered
// subset is left alone until the next value change.
func (a *Autocomplete) SetSuggestions(items []string) {
	a.suggestions = append([]string(nil), items...)
}

// Value returns the bound text value.
func (a *Autocomplete) Value() string {
	if a.bind.Value == nil {
		return ""
	}
	return a.bind.Value()
}

// Change handles an edit of the bound value.
func (a *Autocomplete) Change(text string) {
	if a.bind.SetValue != nil {
		a.bind.SetValue(text)
	}
	a.Filtered = FilterSuggestions(a.suggestions, text)
	a.Active = 0
	a.Show = true
	if a.bind.MarkDirty != nil {
		a.bind.MarkDirty()
	}
}

// Click selects text directly, as a pointer selection would. The dirty flag
// is untouched; committing is the caller's job.
func (a *Autocomplete) Click(text string) {
	a.Active = 0
	a.Filtered = nil
	a.Show = false
	if a.bind.SetValue != nil {
		a.bind.SetValue(text)
	}
}

// ClickVisible selects the suggestion at idx within the filtered subset.
func (a *Autocomplete) ClickVisible(idx int) bool {
	if !a.Visible() || idx < 0 || idx >= len(a.Filtered) {
		return false
	}
	a.Click(a.Filtered[idx])
	return true
}

// Key applies a navigation key and reports whether it was consumed.
func (a *Autocomplete) Key(k Key) bool {
	if a.Value() == "" {
		return false
	}
	if len(a.Filtered) == 0 {
		if k != KeyEnter {
			return false
		}
		if a.bind.Submit != nil {
			a.bind.Submit()
		}
		return true
	}
	switch k {
	case KeyEnter:
		selected := a.Filtered[a.activeIndex()]
		a.Active = 0
		a.Show = false
		if a.bind.SetValue != nil {
			a.bind.SetValue(selected)
		}
		a.Filtered = nil
		return true
	case KeyUp:
		if a.Active > 0 {
			a.Active--
		}
		return true
	case KeyDown:
		if a.Active+1 < len(a.Filtered) {
			a.Active++
		}
		return true
	}
	return false
}

func (a *Autocomplete) activeIndex() int {
	if a.Active < 0 {
		return 0
	}
	if a.Active >= len(a.Filtered) {
		return len(a.Filtered) - 1
	}
	return a.Active
}

// Visible reports whether the suggestion list (or its empty indicator)
// should be drawn.
func (a *Autocomplete) Visible() bool {
	return a.Show && a.Value() != ""
}

// NoSuggestions reports whether the list is visible but nothing matched.
func (a *Autocomplete) NoSuggestions() bool {
	return a.Visible() && len(a.Filtered) == 0
}

// FilterSuggestions returns the items containing text, ignoring case, in
// their original order.
func FilterSuggestions(items []string, text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), lower) {
			out = append(out, item)
		}
	}
	return out
}
