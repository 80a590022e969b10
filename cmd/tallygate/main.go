package main

import (
	"os"

	"github.com/tallygate-dev/tallygate/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
