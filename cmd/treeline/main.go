package main

import (
	"os"

	"github.com/keelworks/treeline/cmd/treeline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
