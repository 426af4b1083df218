package main

import (
	"os"

	"github.com/pams-dev/pams/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
