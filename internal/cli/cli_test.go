package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/tickbox/internal/app"
	"github.com/idilsaglam/tickbox/internal/model"
	"github.com/idilsaglam/tickbox/internal/prompt"
	"github.com/idilsaglam/tickbox/internal/ui"
)

type fakePrompter struct {
	input   string
	confirm bool
	asked   []string
}

func (p *fakePrompter) Input(title string) (string, error) {
	p.asked = append(p.asked, title)
	return p.input, nil
}

func (p *fakePrompter) Confirm(title string, _ bool) (bool, error) {
	p.asked = append(p.asked, title)
	return p.confirm, nil
}

type harness struct {
	t        *testing.T
	dir      string
	prompter prompt.Prompter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"TICKBOX_BACKEND", "TICKBOX_DATA_DIR", "TICKBOX_KEY", "TICKBOX_THEME", "TICKBOX_LOG_LEVEL", "TICKBOX_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	return &harness{t: t, dir: t.TempDir(), prompter: prompt.NoopPrompter{}}
}

// run executes the CLI against the harness data dir.
func (h *harness) run(args ...string) (code int, stdout, stderr string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--backend", "json", "--data-dir", h.dir}, args...)
	code = Execute(full,
		WithOutput(&out, &errOut),
		WithPrompter(h.prompter),
		withTUI(func(*app.App) error { return nil }),
	)
	return code, ui.StripANSI(out.String()), ui.StripANSI(errOut.String())
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	code, out, errOut := h.run(args...)
	if code != 0 {
		h.t.Fatalf("%v: exit %d, stderr: %s", args, code, errOut)
	}
	return out
}

func (h *harness) items() []model.Item {
	h.t.Helper()
	b, err := os.ReadFile(filepath.Join(h.dir, "todoItems.json"))
	if err != nil {
		h.t.Fatal(err)
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		h.t.Fatal(err)
	}
	return items
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "Buy", "milk")
	if !strings.Contains(out, "added #1 Buy milk") {
		t.Errorf("add output = %q", out)
	}
	h.mustRun("add", "Call mom")

	out = h.mustRun("ls")
	if !strings.Contains(out, "Buy milk") || !strings.Contains(out, "Call mom") {
		t.Errorf("ls output missing items: %q", out)
	}

	items := h.items()
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("stored items = %+v", items)
	}
}

func TestAdd_Prompt(t *testing.T) {
	h := newHarness(t)
	p := &fakePrompter{input: "from prompt"}
	h.prompter = p

	h.mustRun("add")
	if len(p.asked) != 1 {
		t.Fatalf("prompts = %v", p.asked)
	}
	if items := h.items(); len(items) != 1 || items[0].Text != "from prompt" {
		t.Errorf("stored items = %+v", items)
	}
}

func TestAdd_NoTextNonInteractive(t *testing.T) {
	h := newHarness(t)
	code, _, errOut := h.run("add")
	if code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
	if !strings.Contains(errOut, "missing item text") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestSearch(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "Buy milk")
	h.mustRun("add", "Buy bread")
	h.mustRun("add", "Walk dog")

	out := h.mustRun("search", "Buy")
	if !strings.Contains(out, "Buy milk") || !strings.Contains(out, "Buy bread") {
		t.Errorf("search output = %q", out)
	}
	if strings.Contains(out, "Walk dog") {
		t.Errorf("search output should not contain non-matching item: %q", out)
	}

	out = h.mustRun("search", "buy")
	if strings.Contains(out, "Buy milk") {
		t.Errorf("search is case-sensitive, got %q", out)
	}
}

func TestSelectCompleteRemove(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a")
	h.mustRun("add", "b")
	h.mustRun("add", "c")

	out := h.mustRun("select", "1", "#3")
	if !strings.Contains(out, "selected #1 #3") {
		t.Errorf("select output = %q", out)
	}

	out = h.mustRun("complete")
	if !strings.Contains(out, "completed #1 #3") {
		t.Errorf("complete output = %q", out)
	}
	items := h.items()
	if !items[0].IsComplete || items[1].IsComplete || !items[2].IsComplete {
		t.Errorf("completion flags wrong: %+v", items)
	}

	h.mustRun("unselect", "3")
	out = h.mustRun("rm", "--yes")
	if !strings.Contains(out, "removed #1") {
		t.Errorf("rm output = %q", out)
	}
	items = h.items()
	if len(items) != 2 || items[0].Text != "b" || items[1].Text != "c" {
		t.Errorf("remaining items = %+v", items)
	}
}

func TestSelect_UnknownID(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a")

	code, out, errOut := h.run("select", "7")
	if code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
	if !strings.Contains(errOut, "no item #7") {
		t.Errorf("stderr = %q", errOut)
	}
	if strings.Contains(out, "selected") {
		t.Errorf("stdout = %q", out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"non-numeric id", []string{"select", "x"}},
		{"zero id", []string{"unselect", "0"}},
		{"missing ids", []string{"select"}},
		{"extra args", []string{"complete", "now"}},
		{"unknown flag", []string{"ls", "--bogus"}},
		{"unknown command", []string{"frobnicate"}},
		{"unknown backend", []string{"--backend", "redis", "ls"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if code, _, errOut := h.run(tt.args...); code != 2 {
				t.Errorf("exit = %d, want 2 (stderr %q)", code, errOut)
			}
		})
	}
}

func TestRemove_Confirm(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a")
	h.mustRun("select", "1")

	p := &fakePrompter{confirm: false}
	h.prompter = p
	out := h.mustRun("rm")
	if len(p.asked) != 1 {
		t.Errorf("prompts = %v", p.asked)
	}
	if !strings.Contains(out, "nothing removed") || len(h.items()) != 1 {
		t.Errorf("declined rm changed the store: %q", out)
	}

	p.confirm = true
	h.mustRun("rm")
	if n := len(h.items()); n != 0 {
		t.Errorf("items after confirmed rm = %d, want 0", n)
	}
}

func TestRemove_NothingSelected(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "a")
	p := &fakePrompter{}
	h.prompter = p

	out := h.mustRun("rm")
	if len(p.asked) != 0 {
		t.Errorf("should not prompt with nothing selected, asked %v", p.asked)
	}
	if !strings.Contains(out, "nothing selected") {
		t.Errorf("rm output = %q", out)
	}
}

func TestMalformedBlob(t *testing.T) {
	h := newHarness(t)
	if err := os.WriteFile(filepath.Join(h.dir, "todoItems.json"), []byte(`{"not":"a list"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := h.run("ls")
	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if !strings.Contains(errOut, `"todoItems"`) {
		t.Errorf("stderr should name the key: %q", errOut)
	}
}

func TestCustomKey(t *testing.T) {
	h := newHarness(t)
	h.mustRun("--key", "work", "add", "ship it")
	if _, err := os.Stat(filepath.Join(h.dir, "work.json")); err != nil {
		t.Errorf("expected work.json: %v", err)
	}
	out := h.mustRun("ls")
	if strings.Contains(out, "ship it") {
		t.Errorf("default key should not see items stored under work: %q", out)
	}
}

func TestRootRunsTUI(t *testing.T) {
	h := newHarness(t)
	var ran bool
	var out, errOut bytes.Buffer
	code := Execute([]string{"--backend", "memory"},
		WithOutput(&out, &errOut),
		WithPrompter(h.prompter),
		withTUI(func(a *app.App) error {
			ran = a.Store != nil
			return nil
		}),
	)
	if code != 0 || !ran {
		t.Errorf("exit = %d, ran = %v", code, ran)
	}
}
