package state

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommitAppendsAndResetsDirty(t *testing.T) {
	l := NewListField("extra-line", "Extra Info", "")
	l.Edit("in C minor")
	if !l.Dirty {
		t.Fatalf("expected edit to mark dirty")
	}
	if !l.Commit() {
		t.Fatalf("expected commit to append")
	}
	if l.Pending != "" || l.Dirty {
		t.Fatalf("expected pending cleared and clean, got %q dirty=%v", l.Pending, l.Dirty)
	}
	if diff := cmp.Diff([]string{"in C minor"}, l.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestCommitIgnoresEmptyPending(t *testing.T) {
	l := NewListField("extra-line", "Extra Info", "")
	l.Edit("x")
	l.Edit("")
	if l.Commit() {
		t.Fatalf("expected empty commit to be a no-op")
	}
	if !l.Dirty {
		t.Fatalf("expected dirty flag to survive empty commit")
	}
	if len(l.Items) != 0 {
		t.Fatalf("expected no items, got %v", l.Items)
	}
}

func TestDuplicatesAreKept(t *testing.T) {
	l := NewListField("composer", "Composers", "")
	for i := 0; i < 2; i++ {
		l.Edit("Bach")
		l.Commit()
	}
	if diff := cmp.Diff([]string{"Bach", "Bach"}, l.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestRemoveAtOutOfRangeIsNoop(t *testing.T) {
	l := NewListField("composer", "Composers", "")
	l.Items = []string{"a", "b"}
	if l.RemoveAt(2) || l.RemoveAt(-1) {
		t.Fatalf("expected out of range removal to be ignored")
	}
	if !l.RemoveAt(0) {
		t.Fatalf("expected removal of first item")
	}
	if diff := cmp.Diff([]string{"b"}, l.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestListMatchesSimulation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l := NewListField("composer", "Composers", "")
	model := []string{}
	words := []string{"Bach", "Brahms", "Liszt", "", "Bach"}
	for step := 0; step < 500; step++ {
		if rng.Intn(3) == 0 {
			idx := rng.Intn(len(model)+2) - 1
			l.RemoveAt(idx)
			if idx >= 0 && idx < len(model) {
				model = append(model[:idx:idx], model[idx+1:]...)
			}
			continue
		}
		w := words[rng.Intn(len(words))]
		l.Edit(w)
		l.Commit()
		if w != "" {
			model = append(model, w)
		}
		if diff := cmp.Diff(model, l.Snapshot()); diff != "" {
			t.Fatalf("step %d: list diverged (-model +list):\n%s", step, diff)
		}
	}
}

func TestAutocompleteEnterCommitsWhenNothingMatches(t *testing.T) {
	l := NewListField("composer", "Composers", "")
	l.EnableAutocomplete().SetSuggestions([]string{"Bach"})
	l.Edit("Hildegard")
	if !l.Enter() {
		t.Fatalf("expected enter consumed")
	}
	if diff := cmp.Diff([]string{"Hildegard"}, l.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
	if l.Dirty {
		t.Fatalf("expected commit to clear dirty flag")
	}
}

func TestAutocompleteEnterSelectsWithoutCommitting(t *testing.T) {
	l := NewListField("composer", "Composers", "")
	l.EnableAutocomplete().SetSuggestions([]string{"Johann Sebastian Bach", "Carl Philipp Emanuel Bach"})
	l.Edit("bach")
	l.Navigate(KeyDown)
	l.Enter()
	if l.Pending != "Carl Philipp Emanuel Bach" {
		t.Fatalf("expected selection in pending input, got %q", l.Pending)
	}
	if len(l.Items) != 0 {
		t.Fatalf("expected nothing committed yet, got %v", l.Items)
	}
	if !l.Dirty {
		t.Fatalf("expected pending selection to stay dirty")
	}
	l.Enter()
	if diff := cmp.Diff([]string{"Carl Philipp Emanuel Bach"}, l.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestClearPendingResetsDirty(t *testing.T) {
	l := NewListField("extra-line", "Extra Info", "")
	l.Edit("x")
	l.ClearPending()
	if l.Dirty || l.Pending != "" {
		t.Fatalf("expected clean empty input, got %q dirty=%v", l.Pending, l.Dirty)
	}
}

func TestItemCursorClamps(t *testing.T) {
	l := NewListField("composer", "Composers", "")
	l.Items = []string{"a", "b", "c"}
	if l.MoveItemCursor(-1) {
		t.Fatalf("expected no movement above first item")
	}
	if !l.MoveItemCursorEnd() || l.ItemCursor != 2 {
		t.Fatalf("expected cursor at end, got %d", l.ItemCursor)
	}
	if l.MoveItemCursor(1) {
		t.Fatalf("expected no movement past last item")
	}
	l.RemoveSelected()
	if l.ItemCursor != 1 {
		t.Fatalf("expected cursor clamped after removal, got %d", l.ItemCursor)
	}
	l.MoveItemCursorHome()
	if l.ItemCursor != 0 {
		t.Fatalf("expected cursor home, got %d", l.ItemCursor)
	}

	empty := NewListField("composer", "Composers", "")
	empty.ItemCursor = 4
	if empty.MoveItemCursor(1) || empty.ItemCursor != 0 {
		t.Fatalf("expected empty list cursor reset to 0, got %d", empty.ItemCursor)
	}
}

func TestDisableAutocompleteReturnsToPlainEntry(t *testing.T) {
	l := NewListField("composer", "Composers", "")
	l.EnableAutocomplete()
	l.Edit("Bach")
	l.DisableAutocomplete()
	if l.Auto != nil {
		t.Fatalf("expected plain text mode")
	}
	if !l.Enter() || len(l.Items) != 1 || l.Items[0] != "Bach" {
		t.Fatalf("expected enter to commit in plain mode, got %v", l.Items)
	}
}
