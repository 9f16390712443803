package main

import (
	"os"

	"walletsegue/cmd/walletsegue/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
