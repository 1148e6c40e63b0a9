package table

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
)

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"url", "http://x/a"},
		{"file", "title.pdf"},
		{"combined"},
	}, []Alignment{AlignLeft})
	want := []string{
		"url       http://x/a",
		"file      title.pdf",
		"combined",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatRightAlignment(t *testing.T) {
	got := Format([][]string{{"1", "Bach"}, {"10", "Brahms"}}, []Alignment{AlignRight})
	want := []string{" 1  Bach", "10  Brahms"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected rows (-want +got):\n%s", diff)
	}
}

func TestFormatIgnoresStyling(t *testing.T) {
	bold := lipgloss.NewStyle().Bold(true)
	got := Format([][]string{{bold.Render("file"), "a"}, {"url", "b"}}, nil)
	if w := lipgloss.Width(got[1]); w != 7 {
		t.Fatalf("expected styled cell measured by display width, got width %d (%q)", w, got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
