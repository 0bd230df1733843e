package main

import (
	"os"

	"github.com/motomind/motomind/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
