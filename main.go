package main

import (
	"os"

	"github.com/rheo/rheo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
