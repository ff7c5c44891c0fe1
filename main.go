package main

import (
	"os"

	"github.com/spigell/smart-hire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
