package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/tickbox/internal/model"
	"github.com/idilsaglam/tickbox/internal/ui"
)

// lineView prints presenter effects as terminal lines.
type lineView struct {
	w     io.Writer
	input string
	// ready is false while the presenter draws its initial list; one-shot
	// commands only print what they asked for.
	ready bool
}

func (v *lineView) InputText() string { return v.input }

func (v *lineView) RenderList(items []model.Item) {
	if !v.ready {
		return
	}
	ui.Panel(v.w, ui.ListLines(items))
}

func (v *lineView) AppendItem(it model.Item) {
	ui.OK(v.w, fmt.Sprintf("added #%d %s", it.ID, it.Text))
}

func (v *lineView) MarkCompleted(ids []int) {
	if len(ids) == 0 {
		fmt.Fprintln(v.w, ui.Current().Muted.Render("nothing selected"))
		return
	}
	ui.OK(v.w, "completed "+formatIDs(ids))
}

func (v *lineView) RemoveItems(ids []int) {
	if len(ids) == 0 {
		fmt.Fprintln(v.w, ui.Current().Muted.Render("nothing selected"))
		return
	}
	ui.OK(v.w, "removed "+formatIDs(ids))
}

func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, " ")
}
