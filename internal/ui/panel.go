package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tickbox/internal/model"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes colour escapes, leaving the visible text.
func StripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

const maxTextWidth = 80

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Header renders the counts line shown above a list.
func Header(items []model.Item) string {
	t := Current()
	d, p := model.Stats(items)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), len(items),
	)
}

// ItemLine renders one item: id, selection checkbox, text.
// Completed items are struck through.
func ItemLine(it model.Item) string {
	t := Current()
	box := t.Muted.Render(t.BoxUnchecked)
	if it.IsSelected {
		box = t.Accent.Render(t.BoxChecked)
	}
	text := it.Text
	if len([]rune(text)) > maxTextWidth {
		text = string([]rune(text)[:maxTextWidth-3]) + "..."
	}
	if it.IsComplete {
		text = t.Done.Render(text)
	}
	return fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%3d.", it.ID)), box, text)
}

// ListLines renders header, progress bar and one line per item.
func ListLines(items []model.Item) []string {
	t := Current()
	d, p := model.Stats(items)
	lines := []string{
		Header(items),
		t.Muted.Render(ProgressBar(d, d+p, 28)),
		"",
	}
	if len(items) == 0 {
		return append(lines, t.Muted.Render("no items"))
	}
	for _, it := range items {
		lines = append(lines, ItemLine(it))
	}
	return lines
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	border := lipgloss.NewStyle().
		Border(Current().Border).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	fmt.Fprintln(w, border.Render(strings.Join(lines, "\n")))
}
