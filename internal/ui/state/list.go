package state

import "github.com/atomicstack/title-page-form/internal/logging/events"

// ListField is an ordered, editable collection of strings fed by a single
// pending input.
type ListField struct {
	Name        string
	Label       string
	Placeholder string

	Items      []string
	Pending    string
	Dirty      bool
	ItemCursor int

	Auto *Autocomplete
}

// NewListField returns an empty list in plain text mode.
func NewListField(name, label, placeholder string) *ListField {
	return &ListField{Name: name, Label: label, Placeholder: placeholder}
}

// InputID is the stable identifier of the pending input.
func (l *ListField) InputID() string { return l.Name + "-next-input" }

// ListID is the stable identifier of the committed items.
func (l *ListField) ListID() string { return l.Name + "-list" }

// EnableAutocomplete switches the list into autocomplete mode. Enter with no
// matching suggestion commits the pending value.
func (l *ListField) EnableAutocomplete() *Autocomplete {
	l.Auto = NewAutocomplete(l.Name, Binding{
		Value:     func() string { return l.Pending },
		SetValue:  func(v string) { l.Pending = v },
		MarkDirty: func() { l.Dirty = true },
		Submit:    func() { l.Commit() },
	})
	return l.Auto
}

// DisableAutocomplete returns the list to plain text mode.
func (l *ListField) DisableAutocomplete() {
	l.Auto = nil
}

// Edit replaces the pending value.
func (l *ListField) Edit(text string) {
	if l.Auto != nil {
		l.Auto.Change(text)
		events.Suggest.Filter(l.Name, text, len(l.Auto.Filtered))
		return
	}
	l.Dirty = true
	l.Pending = text
}

// Enter handles the Enter key on the pending input and reports whether it
// was consumed.
func (l *ListField) Enter() bool {
	if l.Auto == nil {
		return l.Commit()
	}
	visible := len(l.Auto.Filtered) > 0
	consumed := l.Auto.Key(KeyEnter)
	if consumed && visible {
		events.Suggest.Select(l.Name, l.Pending)
	}
	return consumed
}

// Navigate forwards up/down to the autocomplete, if any.
func (l *ListField) Navigate(k Key) bool {
	if l.Auto == nil {
		return false
	}
	if !l.Auto.Key(k) {
		return false
	}
	events.Suggest.Active(l.Name, l.Auto.Active)
	return true
}

// Pick selects the idx-th visible suggestion.
func (l *ListField) Pick(idx int) bool {
	if l.Auto == nil || !l.Auto.ClickVisible(idx) {
		return false
	}
	events.Suggest.Select(l.Name, l.Pending)
	return true
}

// Commit appends the pending value. Empty values are ignored.
func (l *ListField) Commit() bool {
	if l.Pending == "" {
		return false
	}
	l.Items = append(l.Items, l.Pending)
	l.Pending = ""
	l.Dirty = false
	events.List.Commit(l.Name, l.Items[len(l.Items)-1], len(l.Items))
	return true
}

// RemoveAt deletes the item at idx. Out of range indexes are ignored.
func (l *ListField) RemoveAt(idx int) bool {
	if idx < 0 || idx >= len(l.Items) {
		return false
	}
	items := make([]string, 0, len(l.Items)-1)
	items = append(items, l.Items[:idx]...)
	items = append(items, l.Items[idx+1:]...)
	l.Items = items
	l.clampCursor()
	events.List.Remove(l.Name, idx, len(l.Items))
	return true
}

// RemoveSelected deletes the item under the item cursor.
func (l *ListField) RemoveSelected() bool {
	return l.RemoveAt(l.ItemCursor)
}

// ClearPending empties the pending input and resets the dirty flag.
func (l *ListField) ClearPending() {
	l.Pending = ""
	l.Dirty = false
}

// Reset drops every committed item. The pending input is left alone.
func (l *ListField) Reset() {
	l.Items = nil
	l.ItemCursor = 0
}

// Snapshot returns a fresh copy of the items, never nil.
func (l *ListField) Snapshot() []string {
	out := make([]string, len(l.Items))
	copy(out, l.Items)
	return out
}

// MoveItemCursor shifts the item cursor by delta, clamped to the list.
func (l *ListField) MoveItemCursor(delta int) bool {
	if len(l.Items) == 0 {
		l.ItemCursor = 0
		return false
	}
	old := l.ItemCursor
	l.ItemCursor += delta
	l.clampCursor()
	if l.ItemCursor != old {
		events.List.Cursor(l.Name, l.ItemCursor)
		return true
	}
	return false
}

// MoveItemCursorHome moves the item cursor to the first item.
func (l *ListField) MoveItemCursorHome() bool {
	return l.MoveItemCursor(-len(l.Items))
}

// MoveItemCursorEnd moves the item cursor to the last item.
func (l *ListField) MoveItemCursorEnd() bool {
	return l.MoveItemCursor(len(l.Items))
}

func (l *ListField) clampCursor() {
	if l.ItemCursor >= len(l.Items) {
		l.ItemCursor = len(l.Items) - 1
	}
	if l.ItemCursor < 0 {
		l.ItemCursor = 0
	}
}
