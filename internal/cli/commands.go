package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tickbox/internal/app"
	"github.com/idilsaglam/tickbox/internal/event"
	"github.com/idilsaglam/tickbox/internal/prompt"
	"github.com/idilsaglam/tickbox/internal/ui"
)

func newUICmd(c *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Start the interactive TUI",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUI()
		},
	}
}

func newAddCmd(c *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add an item (text can be several words)",
		Example: strings.TrimSpace(`
  tickbox add Buy milk
  tickbox add "Call the plumber"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				in, err := c.Prompter.Input("New item")
				if errors.Is(err, prompt.ErrNonInteractive) {
					return usagef("add: missing item text")
				}
				if err != nil {
					return err
				}
				text = in
			}
			return c.withView(func(a *app.App, v *lineView) error {
				v.input = text
				return a.Bus().Publish(event.Event{Name: event.AddRequested})
			})
		},
	}
}

func newListCmd(c *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withView(func(a *app.App, v *lineView) error {
				return a.Bus().Publish(event.Search(""))
			})
		},
	}
}

func newSearchCmd(c *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <phrase...>",
		Short: "List items whose text contains the phrase (case-sensitive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase := strings.Join(args, " ")
			return c.withView(func(a *app.App, v *lineView) error {
				return a.Bus().Publish(event.Search(phrase))
			})
		},
	}
}

func newSelectCmd(c *App, selected bool) *cobra.Command {
	use, verb := "select", "selected"
	short := "Mark items as selected"
	if !selected {
		use, verb = "unselect", "unselected"
		short = "Clear the selection mark of items"
	}
	return &cobra.Command{
		Use:   use + " <id>...",
		Short: short,
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(use, args)
			if err != nil {
				return err
			}
			return c.withView(func(a *app.App, v *lineView) error {
				var done []int
				for _, id := range ids {
					if _, ok := a.Store.Item(id); !ok {
						ui.Hint(c.Err, fmt.Sprintf("no item #%d; run `tickbox ls` to see ids", id))
						continue
					}
					if err := a.Bus().Publish(event.Toggle(id, selected)); err != nil {
						return err
					}
					done = append(done, id)
				}
				if len(done) > 0 {
					ui.OK(c.Out, verb+" "+formatIDs(done))
				}
				return nil
			})
		},
	}
}

func newCompleteCmd(c *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Mark every selected item as complete",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withView(func(a *app.App, v *lineView) error {
				return a.Bus().Publish(event.Event{Name: event.CompleteSelectedRequested})
			})
		},
	}
}

func newRemoveCmd(c *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove every selected item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withView(func(a *app.App, v *lineView) error {
				n := len(a.Store.SelectedIDs())
				if n > 0 && !yes {
					ok, err := c.Prompter.Confirm(fmt.Sprintf("Remove %d selected item(s)?", n), false)
					switch {
					case errors.Is(err, prompt.ErrNonInteractive):
						// Scripts do not get a prompt.
					case err != nil:
						return err
					case !ok:
						fmt.Fprintln(c.Out, ui.Current().Muted.Render("nothing removed"))
						return nil
					}
				}
				return a.Bus().Publish(event.Event{Name: event.RemoveSelectedRequested})
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func parseIDs(cmd string, args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(strings.TrimPrefix(a, "#"))
		if err != nil || id < 1 {
			return nil, usagef("%s: not an item id: %s", cmd, a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
