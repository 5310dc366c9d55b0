package main

import (
	"os"

	"credito/cmd/cpfctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
