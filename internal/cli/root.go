// Package cli is the tickbox command line. With no subcommand it starts the
// TUI; every other command opens the store, publishes one or more events
// and prints what the presenter reports.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tickbox/internal/app"
	"github.com/idilsaglam/tickbox/internal/config"
	"github.com/idilsaglam/tickbox/internal/logging"
	"github.com/idilsaglam/tickbox/internal/prompt"
	"github.com/idilsaglam/tickbox/internal/store"
	"github.com/idilsaglam/tickbox/internal/tui"
	"github.com/idilsaglam/tickbox/internal/ui"
)

// App carries root flags and the process streams.
type App struct {
	ConfigPath string
	Backend    string
	DataDir    string
	Key        string
	Theme      string
	LogLevel   string

	Out      io.Writer
	Err      io.Writer
	Prompter prompt.Prompter

	// runTUI is swapped in tests.
	runTUI func(a *app.App) error
}

// Option configures an App.
type Option func(*App)

// WithOutput sets the stdout and stderr writers.
func WithOutput(out, errOut io.Writer) Option {
	return func(c *App) { c.Out, c.Err = out, errOut }
}

// WithPrompter overrides terminal detection for confirmations and input.
func WithPrompter(p prompt.Prompter) Option {
	return func(c *App) { c.Prompter = p }
}

func newApp(opts ...Option) *App {
	c := &App{Out: os.Stdout, Err: os.Stderr, runTUI: tui.Run}
	for _, opt := range opts {
		opt(c)
	}
	if c.Prompter == nil {
		if ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout) {
			c.Prompter = prompt.HuhPrompter{}
		} else {
			c.Prompter = prompt.NoopPrompter{}
		}
	}
	return c
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	return newRootCmd(newApp(opts...))
}

func newRootCmd(c *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tickbox",
		Short:         "A tiny to-do list with a TUI and scriptable commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tickbox

  # Scriptable commands
  tickbox add Buy milk
  tickbox select 1 3
  tickbox complete
  tickbox rm --yes
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUI()
		},
	}
	cmd.SetOut(c.Out)
	cmd.SetErr(c.Err)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usagef("%s: %v", cmd.Name(), err)
	})

	cmd.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "Path to a TOML config file")
	cmd.PersistentFlags().StringVar(&c.Backend, "backend", "", "Storage backend (json|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&c.DataDir, "data-dir", "", "Directory holding the store files")
	cmd.PersistentFlags().StringVar(&c.Key, "key", "", "Storage key of the item list")
	cmd.PersistentFlags().StringVar(&c.Theme, "theme", "", "Color theme (classic|neon|mono)")
	cmd.PersistentFlags().StringVar(&c.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newUICmd(c))
	cmd.AddCommand(newAddCmd(c))
	cmd.AddCommand(newListCmd(c))
	cmd.AddCommand(newSearchCmd(c))
	cmd.AddCommand(newSelectCmd(c, true))
	cmd.AddCommand(newSelectCmd(c, false))
	cmd.AddCommand(newCompleteCmd(c))
	cmd.AddCommand(newRemoveCmd(c))

	return cmd
}

// Execute runs the command line and returns the process exit code:
// 0 on success, 1 on runtime errors, 2 on usage errors.
func Execute(args []string, opts ...Option) int {
	c := newApp(opts...)
	root := newRootCmd(c)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	if isUsage(err) || strings.HasPrefix(err.Error(), "unknown command") {
		ui.Fail(c.Err, err.Error())
		fmt.Fprintln(c.Err, ui.Current().Muted.Render("Run 'tickbox --help' for usage."))
		return 2
	}
	ui.Fail(c.Err, err.Error())
	var me *store.MalformedError
	if errors.As(err, &me) {
		ui.Hint(c.Err, fmt.Sprintf("the %q blob is not a valid item list; repair it or point --key at another key", me.Key))
	}
	return 1
}

// resolveConfig resolves the effective configuration: file, .env and environment
// first, root flags last.
func (c *App) resolveConfig() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if c.Backend != "" {
		cfg.Backend = c.Backend
	}
	if c.DataDir != "" {
		cfg.DataDir = c.DataDir
	}
	if c.Key != "" {
		cfg.Key = c.Key
	}
	if c.Theme != "" {
		cfg.Theme = c.Theme
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, usagef("%v", err)
	}
	return cfg, nil
}

// open builds the application context for one command.
func (c *App) open() (*app.App, error) {
	cfg, err := c.resolveConfig()
	if err != nil {
		return nil, err
	}
	ui.SetTheme(cfg.Theme)
	logger := logging.New(c.Err, cfg.LogLevel, cfg.LogFormat)
	a, err := app.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	return a, nil
}

// withView opens the app, attaches a line view and runs fn.
func (c *App) withView(fn func(a *app.App, v *lineView) error) error {
	a, err := c.open()
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.Logger().Warn("close", "err", err)
		}
	}()

	v := &lineView{w: c.Out}
	if _, err := a.Attach(v); err != nil {
		return err
	}
	v.ready = true
	return fn(a, v)
}

func (c *App) runUI() error {
	a, err := c.open()
	if err != nil {
		return err
	}
	defer a.Close()
	return c.runTUI(a)
}

func withTUI(fn func(a *app.App) error) Option {
	return func(c *App) { c.runTUI = fn }
}
