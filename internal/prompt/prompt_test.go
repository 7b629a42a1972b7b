package prompt

import (
	"errors"
	"testing"
)

func TestNoopPrompter(t *testing.T) {
	var p Prompter = NoopPrompter{}
	if _, err := p.Input("title"); !errors.Is(err, ErrNonInteractive) {
		t.Errorf("Input err = %v", err)
	}
	if ok, err := p.Confirm("title", true); ok || !errors.Is(err, ErrNonInteractive) {
		t.Errorf("Confirm = %v, %v", ok, err)
	}
}
