package main

import (
	"os"

	"github.com/skip-mev/sequencer/cmd/profitcheck/cmd"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
