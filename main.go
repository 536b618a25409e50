package main

import (
	"os"

	"github.com/ptreezh/dnaspec-cli/cmd"
	"github.com/ptreezh/dnaspec-cli/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
