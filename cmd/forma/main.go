// Package main is the entry point for the forma CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/forma/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
