package main

import (
	"os"

	"dishfinder/cmd/dinectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
