// Package main is the entry point for the scriptgate CLI.
package main

import (
	"errors"
	"os"

	"github.com/xdg/scriptgate/internal/cmd"
	"github.com/xdg/scriptgate/internal/term"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		term.Error("%v", err)
		os.Exit(1)
	}
}
