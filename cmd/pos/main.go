package main

import (
	"os"

	"github.com/fjod/go_pos/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
