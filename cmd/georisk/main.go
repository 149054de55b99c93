package main

import (
	"os"

	"github.com/overlaylab/georisk/cmd/georisk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
