package main

import (
	"os"

	"github.com/dsaintel/dsaiq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
