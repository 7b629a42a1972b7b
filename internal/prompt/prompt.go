package prompt

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrNonInteractive is returned when prompting without a terminal.
var ErrNonInteractive = errors.New("cannot prompt in non-interactive mode")

// Prompter asks the user for input.
type Prompter interface {
	// Input prompts for a line of text.
	Input(title string) (string, error)
	// Confirm prompts for yes/no.
	Confirm(title string, defaultValue bool) (bool, error)
}

// NoopPrompter fails every prompt.
type NoopPrompter struct{}

func (NoopPrompter) Input(string) (string, error)       { return "", ErrNonInteractive }
func (NoopPrompter) Confirm(string, bool) (bool, error) { return false, ErrNonInteractive }

// HuhPrompter prompts with charmbracelet/huh forms.
type HuhPrompter struct{}

func (HuhPrompter) Input(title string) (string, error) {
	var result string
	err := huh.NewInput().
		Title(title).
		Value(&result).
		Run()
	return result, err
}

func (HuhPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	result := defaultValue
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&result).
		Run()
	return result, err
}
