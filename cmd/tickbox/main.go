package main

import (
	"os"

	"github.com/idilsaglam/tickbox/internal/cli"
)

func main() {
	// Root flags and subcommands are parsed by cobra; no args opens the TUI.
	os.Exit(cli.Execute(os.Args[1:]))
}
