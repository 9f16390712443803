package main

import (
	"os"

	"walletsegue/cmd/walletsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
