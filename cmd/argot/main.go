package main

import (
	"os"

	"github.com/msto63/argot/cmd/argot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
