package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/idilsaglam/tickbox/internal/model"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 4, 8, "░░░░░░░░   0%"},
		{2, 4, 8, "████░░░░  50%"},
		{4, 4, 8, "████████ 100%"},
		{0, 0, 2, "░░░░░   0%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d,%d,%d): got %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestItemLine(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	tests := []struct {
		item model.Item
		want string
	}{
		{model.Item{ID: 1, Text: "milk"}, "  1. [ ] milk"},
		{model.Item{ID: 12, Text: "eggs", IsSelected: true}, " 12. [x] eggs"},
		{model.Item{ID: 3, Text: "bread", IsComplete: true}, "  3. [ ] bread"},
	}
	for _, tt := range tests {
		if got := StripANSI(ItemLine(tt.item)); got != tt.want {
			t.Errorf("ItemLine(%+v): got %q, want %q", tt.item, got, tt.want)
		}
	}
}

func TestItemLine_Truncates(t *testing.T) {
	long := strings.Repeat("a", 100)
	got := StripANSI(ItemLine(model.Item{ID: 1, Text: long}))
	if !strings.HasSuffix(got, "...") {
		t.Errorf("long text not truncated: %q", got)
	}
}

func TestListLines(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	empty := ListLines(nil)
	if got := StripANSI(empty[len(empty)-1]); got != "no items" {
		t.Errorf("empty list: got %q", got)
	}

	items := []model.Item{{ID: 1, Text: "a", IsComplete: true}, {ID: 2, Text: "b"}}
	lines := ListLines(items)
	if len(lines) != 5 {
		t.Fatalf("lines: got %d, want 5", len(lines))
	}
	header := StripANSI(lines[0])
	if !strings.Contains(header, "x 1") || !strings.Contains(header, "- 1") || !strings.Contains(header, "Total 2") {
		t.Errorf("header: got %q", header)
	}
}

func TestPanelAndMessages(t *testing.T) {
	SetTheme("mono")
	defer SetTheme("classic")

	var buf bytes.Buffer
	Panel(&buf, []string{"hello"})
	OK(&buf, "added")
	Fail(&buf, "boom")
	Hint(&buf, "try again")

	out := StripANSI(buf.String())
	for _, want := range []string{"hello", "x added", "✖ boom", "Hint: try again"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSetTheme_UnknownFallsBack(t *testing.T) {
	SetTheme("pink")
	defer SetTheme("classic")
	if Current().Name != "classic" {
		t.Errorf("got %q, want classic", Current().Name)
	}
}
